package util

import "errors"

var (
	ErrUserNotFound         = errors.New("사용자를 찾을 수 없습니다")
	ErrEmailRegistered      = errors.New("이미 등록된 이메일입니다")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrHanziNotFound        = errors.New("hanzi not found")
	ErrExamNotFound         = errors.New("exam not found")
	ErrExamNotInProgress    = errors.New("exam not in progress")
	ErrExamAlreadySubmitted = errors.New("exam already submitted")
	ErrEmptyHanziPool       = errors.New("no hanzi available for grade")
	ErrSubmissionNotFound   = errors.New("writing submission not found")
)
