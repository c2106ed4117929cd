package repository

import (
	"time"

	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
)

type LearningLogRepository struct {
	DB *gorm.DB
}

func NewLearningLogRepository(db *gorm.DB) *LearningLogRepository {
	return &LearningLogRepository{DB: db}
}

func (r *LearningLogRepository) Create(log *model.LearningLog) error {
	return r.DB.Create(log).Error
}

func (r *LearningLogRepository) ListByUser(userID uint, limit int) ([]model.LearningLog, error) {
	var logs []model.LearningLog
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CountActiveDays 기간 내 활동이 있었던 날 수. 학습 연속일 계산에 쓴다
func (r *LearningLogRepository) CountActiveDays(userID uint, since time.Time) (int64, error) {
	var days int64
	err := r.DB.Model(&model.LearningLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Distinct("DATE(created_at)").
		Count(&days).Error
	return days, err
}

func (r *LearningLogRepository) TotalDuration(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.LearningLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}
