package service

import (
	"errors"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	StatRepo *repository.StudyStatRepository
	LogRepo  *repository.LearningLogRepository
}

func NewUserService(userRepo *repository.UserRepository, statRepo *repository.StudyStatRepository, logRepo *repository.LearningLogRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
		StatRepo: statRepo,
		LogRepo:  logRepo,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type ProfileUpdateReq struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddXP 경험치 적립. 시험/게임 채점 뒤 사이드이펙트로 불린다
func (s *UserService) AddXP(userID uint, xp int) error {
	if xp <= 0 {
		return nil
	}
	return s.UserRepo.AddXP(userID, xp)
}

// SetGrade 학습 급수 변경. 합격 후 다음 급수로 올라갈 때 쓴다
func (s *UserService) SetGrade(userID uint, grade float64) error {
	if grade < 1 || grade > 8 {
		return errors.New("invalid grade")
	}
	return s.UserRepo.UpdateGrade(userID, grade)
}

func (s *UserService) Leaderboard(limit int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.UserRepo.FindTopByXP(limit)
}

// StudySummary 학생 대시보드 요약
type StudySummary struct {
	XP             int                       `json:"xp"`
	Grade          float64                   `json:"grade"`
	StudiedHanzi   int64                     `json:"studiedHanzi"`
	ActiveDays     int64                     `json:"activeDays"` // 최근 30일
	TotalMinutes   int64                     `json:"totalMinutes"`
	WeakHanzi      []repository.WeakHanziRow `json:"weakHanzi"`
	RecentActivity []model.LearningLog       `json:"recentActivity"`
}

func (s *UserService) GetStudySummary(userID uint) (*StudySummary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	summary := &StudySummary{XP: user.XP, Grade: user.Grade}

	if studied, err := s.StatRepo.CountStudied(userID); err == nil {
		summary.StudiedHanzi = studied
	}
	if days, err := s.LogRepo.CountActiveDays(userID, time.Now().AddDate(0, 0, -30)); err == nil {
		summary.ActiveDays = days
	}
	if seconds, err := s.LogRepo.TotalDuration(userID); err == nil {
		summary.TotalMinutes = seconds / 60
	}
	if weak, err := s.StatRepo.FindWeakest(userID, 10); err == nil {
		summary.WeakHanzi = weak
	}
	if logs, err := s.LogRepo.ListByUser(userID, 10); err == nil {
		summary.RecentActivity = logs
	}

	return summary, nil
}

// ListUsers 관리자 회원 목록
func (s *UserService) ListUsers(page, limit int, keyword string) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit, keyword)
}

// SetDisabled 계정 잠금/해제
func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
