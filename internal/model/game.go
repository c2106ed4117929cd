package model

type GameType string

const (
	GameFlashCard GameType = "flash_card"
	GameMatching  GameType = "matching"
	GameSpeedQuiz GameType = "speed_quiz"
)

// GameResult 학습 게임 1판의 결과
type GameResult struct {
	BaseModel
	UserID          uint     `gorm:"index;not null" json:"userId"`
	GameType        GameType `gorm:"type:enum('flash_card','matching','speed_quiz');not null" json:"gameType"`
	Grade           float64  `gorm:"not null" json:"grade"`
	Score           int      `gorm:"not null" json:"score"`
	DurationSeconds int      `gorm:"default:0" json:"durationSeconds"`
	RewardXP        int      `gorm:"default:0" json:"rewardXp"`
}

func (GameResult) TableName() string {
	return "game_results"
}
