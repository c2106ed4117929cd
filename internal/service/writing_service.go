package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WritingService 쓰기 연습. 학생이 손글씨 이미지를 올리면 대기열에 쌓이고
// 관리자가 등급(1~5)과 코멘트로 첨삭한다.
type WritingService struct {
	Repo      *repository.WritingRepository
	HanziRepo *repository.HanziRepository
	LogRepo   *repository.LearningLogRepository
	UserSvc   *UserService
	Storage   *StorageService
	Log       *zap.Logger
}

func NewWritingService(
	repo *repository.WritingRepository,
	hanziRepo *repository.HanziRepository,
	logRepo *repository.LearningLogRepository,
	userSvc *UserService,
	storage *StorageService,
	log *zap.Logger,
) *WritingService {
	return &WritingService{
		Repo:      repo,
		HanziRepo: hanziRepo,
		LogRepo:   logRepo,
		UserSvc:   userSvc,
		Storage:   storage,
		Log:       log,
	}
}

func (s *WritingService) Submit(ctx context.Context, userID, hanziID uint, file *multipart.FileHeader) (*model.WritingSubmission, error) {
	if _, err := s.HanziRepo.FindByID(hanziID); err != nil {
		return nil, util.ErrHanziNotFound
	}
	if !util.IsImageFile(file.Filename) {
		return nil, errors.New("unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	filename := fmt.Sprintf("writing/%d/%s", userID, util.RandomFilename(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	submission := &model.WritingSubmission{
		UserID:           userID,
		HanziCharacterID: hanziID,
		ImageURL:         url,
		Status:           model.WritingPending,
	}
	if err := s.Repo.Create(submission); err != nil {
		return nil, err
	}

	go func() {
		if err := s.LogRepo.Create(&model.LearningLog{
			UserID:   userID,
			Activity: "writing_submit",
			Content:  fmt.Sprintf("쓰기 연습 제출 (한자ID: %d)", hanziID),
		}); err != nil {
			s.Log.Warn("learning log write failed", zap.Uint("user", userID), zap.Error(err))
		}
	}()

	return submission, nil
}

func (s *WritingService) Get(id, userID uint, isAdmin bool) (*model.WritingSubmission, error) {
	submission, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if !isAdmin && submission.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return submission, nil
}

func (s *WritingService) ListMine(userID uint, page, limit int) ([]model.WritingSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(userID, page, limit)
}

// ListPending 첨삭 대기 목록 (관리자)
func (s *WritingService) ListPending(page, limit int) ([]model.WritingSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListPending(page, limit)
}

// Review 첨삭. 등급이 높으면 소정의 경험치를 준다
func (s *WritingService) Review(id, reviewerID uint, grade int, comment string) (*model.WritingSubmission, error) {
	if grade < 1 || grade > 5 {
		return nil, errors.New("review grade must be between 1 and 5")
	}

	submission, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.Status == model.WritingReviewed {
		return nil, errors.New("submission already reviewed")
	}

	now := time.Now()
	submission.Status = model.WritingReviewed
	submission.ReviewGrade = &grade
	submission.ReviewComment = comment
	submission.ReviewedBy = &reviewerID
	submission.ReviewedAt = &now
	if err := s.Repo.Update(submission); err != nil {
		return nil, err
	}

	if grade >= 3 {
		if err := s.UserSvc.AddXP(submission.UserID, grade*2); err != nil {
			s.Log.Warn("xp update failed", zap.Uint("user", submission.UserID), zap.Error(err))
		}
	}

	return submission, nil
}
