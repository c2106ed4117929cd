package repository

import (
	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
)

type GameRepository struct {
	DB *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{DB: db}
}

func (r *GameRepository) Create(result *model.GameResult) error {
	return r.DB.Create(result).Error
}

func (r *GameRepository) ListByUser(userID uint, gameType model.GameType, limit int) ([]model.GameResult, error) {
	query := r.DB.Where("user_id = ?", userID)
	if gameType != "" {
		query = query.Where("game_type = ?", gameType)
	}

	var results []model.GameResult
	err := query.Order("created_at desc").Limit(limit).Find(&results).Error
	return results, err
}

// BestScore 게임별 최고 점수
func (r *GameRepository) BestScore(userID uint, gameType model.GameType) (int, error) {
	var best int
	err := r.DB.Model(&model.GameResult{}).
		Where("user_id = ? AND game_type = ?", userID, gameType).
		Select("COALESCE(MAX(score), 0)").
		Scan(&best).Error
	return best, err
}
