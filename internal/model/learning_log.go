package model

import "time"

// LearningLog 사용자 학습 활동 기록
type LearningLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	Activity  string    `gorm:"size:64" json:"activity"` // exam_score, game_score, writing_submit ...
	Content   string    `gorm:"type:text" json:"content"`
	Duration  int       `gorm:"default:0" json:"duration"`
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func (LearningLog) TableName() string {
	return "learning_logs"
}
