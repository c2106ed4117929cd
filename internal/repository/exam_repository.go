package repository

import (
	"time"

	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) CreateSession(session *model.ExamSession) error {
	return r.DB.Create(session).Error
}

func (r *ExamRepository) FindSessionByID(id string) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *ExamRepository) UpdateSession(session *model.ExamSession) error {
	return r.DB.Save(session).Error
}

// FindActiveSession 사용자의 진행 중 세션. 동시에 둘 이상 열 수 없다
func (r *ExamRepository) FindActiveSession(userID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Where("user_id = ? AND status IN ?", userID,
		[]model.ExamStatus{model.ExamNotStarted, model.ExamInProgress}).
		Order("created_at desc").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindExpiredSessions 시간 예산을 넘긴 진행 중 세션들. 백그라운드 스위퍼가 쓴다
func (r *ExamRepository) FindExpiredSessions(now time.Time) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("status = ? AND started_at IS NOT NULL", model.ExamInProgress).
		Where("DATE_ADD(started_at, INTERVAL time_limit MINUTE) <= ?", now).
		Find(&sessions).Error
	return sessions, err
}

// CreateResult 결과와 오답 목록을 한 트랜잭션으로 저장한다
func (r *ExamRepository) CreateResult(result *model.ExamResult) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(result).Error
	})
}

func (r *ExamRepository) FindResultByExamID(examID string) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Preload("WrongAnswers").Where("exam_id = ?", examID).First(&result).Error
	return &result, err
}

func (r *ExamRepository) ListResultsByUser(userID uint, page, limit int) ([]model.ExamResult, int64, error) {
	query := r.DB.Model(&model.ExamResult{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.ExamResult
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

// ListWrongAnswersByUser 오답 노트 복습용. 최근 결과부터 모아 돌려준다
func (r *ExamRepository) ListWrongAnswersByUser(userID uint, limit int) ([]model.WrongAnswer, error) {
	var wrongs []model.WrongAnswer
	err := r.DB.Table("wrong_answers w").
		Joins("JOIN exam_results r ON w.result_id = r.id").
		Where("r.user_id = ?", userID).
		Order("w.created_at desc").
		Limit(limit).
		Select("w.*").
		Scan(&wrongs).Error
	return wrongs, err
}

func (r *ExamRepository) DeleteSession(id string) error {
	return r.DB.Delete(&model.ExamSession{}, "id = ?", id).Error
}

// GradePassRate 급수별 응시/합격 집계 행
type GradePassRate struct {
	Grade    float64 `json:"grade"`
	Attempts int64   `json:"attempts"`
	Passes   int64   `json:"passes"`
	AvgScore float64 `json:"avgScore"`
}

// PassRateByGrade 관리자 대시보드용 급수별 집계
func (r *ExamRepository) PassRateByGrade() ([]GradePassRate, error) {
	var rows []GradePassRate
	err := r.DB.Model(&model.ExamResult{}).
		Select("grade, COUNT(*) as attempts, SUM(passed) as passes, AVG(score) as avg_score").
		Group("grade").
		Order("grade desc").
		Scan(&rows).Error
	return rows, err
}
