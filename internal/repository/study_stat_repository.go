package repository

import (
	"time"

	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudyStatRepository struct {
	DB *gorm.DB
}

func NewStudyStatRepository(db *gorm.DB) *StudyStatRepository {
	return &StudyStatRepository{DB: db}
}

// RecordAnswer 사용자×한자 통계를 upsert로 누적한다. 채점 직후 호출된다
func (r *StudyStatRepository) RecordAnswer(userID, hanziID uint, correct bool) error {
	now := time.Now()
	stat := model.StudyStat{
		UserID:           userID,
		HanziCharacterID: hanziID,
		LastStudiedAt:    now,
	}
	assignments := map[string]interface{}{"last_studied_at": now}
	if correct {
		stat.CorrectCount = 1
		assignments["correct_count"] = gorm.Expr("correct_count + 1")
	} else {
		stat.WrongCount = 1
		assignments["wrong_count"] = gorm.Expr("wrong_count + 1")
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "hanzi_character_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&stat).Error
}

func (r *StudyStatRepository) FindByUser(userID uint) ([]model.StudyStat, error) {
	var stats []model.StudyStat
	err := r.DB.Where("user_id = ?", userID).Find(&stats).Error
	return stats, err
}

// WeakHanziRow 취약 한자 조회 결과. 오답 수 기준으로 정렬된다
type WeakHanziRow struct {
	model.StudyStat
	Character string `json:"character"`
	Meaning   string `json:"meaning"`
	Sound     string `json:"sound"`
}

func (r *StudyStatRepository) FindWeakest(userID uint, limit int) ([]WeakHanziRow, error) {
	var rows []WeakHanziRow
	err := r.DB.Table("study_stats s").
		Select("s.*, h.character, h.meaning, h.sound").
		Joins("JOIN hanzi_characters h ON s.hanzi_character_id = h.id").
		Where("s.user_id = ? AND s.wrong_count > 0", userID).
		Order("s.wrong_count desc, s.last_studied_at desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *StudyStatRepository) CountStudied(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudyStat{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
