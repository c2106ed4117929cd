package model

import "time"

// StudyStat 사용자×한자 단위 학습 통계. 채점 후 사이드이펙트로 갱신된다.
type StudyStat struct {
	BaseModel
	UserID           uint      `gorm:"uniqueIndex:idx_user_hanzi;not null" json:"userId"`
	HanziCharacterID uint      `gorm:"uniqueIndex:idx_user_hanzi;not null" json:"hanziCharacterId"`
	CorrectCount     int       `gorm:"default:0" json:"correctCount"`
	WrongCount       int       `gorm:"default:0" json:"wrongCount"`
	LastStudiedAt    time.Time `json:"lastStudiedAt"`
}

func (StudyStat) TableName() string {
	return "study_stats"
}
