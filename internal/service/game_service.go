package service

import (
	"errors"
	"fmt"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"

	"go.uber.org/zap"
)

// gameRewardCap 게임 1판당 경험치 상한. 반복 플레이로 시험 경험치를
// 앞지르지 못하게 묶어 둔다
const gameRewardCap = 15

type GameService struct {
	Repo    *repository.GameRepository
	LogRepo *repository.LearningLogRepository
	UserSvc *UserService
	Log     *zap.Logger
}

func NewGameService(repo *repository.GameRepository, logRepo *repository.LearningLogRepository, userSvc *UserService, log *zap.Logger) *GameService {
	return &GameService{Repo: repo, LogRepo: logRepo, UserSvc: userSvc, Log: log}
}

type GameResultReq struct {
	GameType        model.GameType `json:"gameType" binding:"required"`
	Grade           float64        `json:"grade" binding:"required"`
	Score           int            `json:"score"`
	DurationSeconds int            `json:"durationSeconds"`
}

func validGameType(t model.GameType) bool {
	switch t {
	case model.GameFlashCard, model.GameMatching, model.GameSpeedQuiz:
		return true
	}
	return false
}

// Record 게임 결과 저장. 점수에 비례한 경험치를 상한 내에서 적립한다
func (s *GameService) Record(userID uint, req GameResultReq) (*model.GameResult, error) {
	if !validGameType(req.GameType) {
		return nil, errors.New("unknown game type")
	}
	if req.Score < 0 {
		return nil, errors.New("score must not be negative")
	}

	xp := req.Score / 10
	if xp > gameRewardCap {
		xp = gameRewardCap
	}

	result := &model.GameResult{
		UserID:          userID,
		GameType:        req.GameType,
		Grade:           req.Grade,
		Score:           req.Score,
		DurationSeconds: req.DurationSeconds,
		RewardXP:        xp,
	}
	if err := s.Repo.Create(result); err != nil {
		return nil, err
	}

	go func() {
		if err := s.UserSvc.AddXP(userID, xp); err != nil {
			s.Log.Warn("xp update failed", zap.Uint("user", userID), zap.Error(err))
		}
		if err := s.LogRepo.Create(&model.LearningLog{
			UserID:   userID,
			Activity: "game_score",
			Content:  fmt.Sprintf("학습 게임 %s (%g급)", req.GameType, req.Grade),
			Duration: req.DurationSeconds,
			Score:    req.Score,
		}); err != nil {
			s.Log.Warn("learning log write failed", zap.Uint("user", userID), zap.Error(err))
		}
	}()

	return result, nil
}

func (s *GameService) History(userID uint, gameType model.GameType, limit int) ([]model.GameResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if gameType != "" && !validGameType(gameType) {
		return nil, errors.New("unknown game type")
	}
	return s.Repo.ListByUser(userID, gameType, limit)
}

func (s *GameService) BestScore(userID uint, gameType model.GameType) (int, error) {
	if !validGameType(gameType) {
		return 0, errors.New("unknown game type")
	}
	return s.Repo.BestScore(userID, gameType)
}
