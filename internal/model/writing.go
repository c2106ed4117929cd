package model

import "time"

type WritingStatus string

const (
	WritingPending  WritingStatus = "pending"
	WritingReviewed WritingStatus = "reviewed"
)

// WritingSubmission 쓰기 연습 제출. 학생이 손글씨 이미지를 올리면
// 관리자가 등급과 코멘트로 첨삭한다.
type WritingSubmission struct {
	BaseModel
	UserID           uint          `gorm:"index;not null" json:"userId"`
	HanziCharacterID uint          `gorm:"index;not null" json:"hanziCharacterId"`
	ImageURL         string        `gorm:"size:255;not null" json:"imageUrl"`
	Status           WritingStatus `gorm:"type:enum('pending','reviewed');default:'pending'" json:"status"`
	ReviewGrade      *int          `json:"reviewGrade,omitempty"` // 1~5
	ReviewComment    string        `gorm:"type:text" json:"reviewComment"`
	ReviewedBy       *uint         `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time    `json:"reviewedAt,omitempty"`
}

func (WritingSubmission) TableName() string {
	return "writing_submissions"
}
