package repository

import (
	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
)

type WritingRepository struct {
	DB *gorm.DB
}

func NewWritingRepository(db *gorm.DB) *WritingRepository {
	return &WritingRepository{DB: db}
}

func (r *WritingRepository) Create(submission *model.WritingSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *WritingRepository) FindByID(id uint) (*model.WritingSubmission, error) {
	var submission model.WritingSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *WritingRepository) Update(submission *model.WritingSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *WritingRepository) ListByUser(userID uint, page, limit int) ([]model.WritingSubmission, int64, error) {
	query := r.DB.Model(&model.WritingSubmission{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.WritingSubmission
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListPending 첨삭 대기 목록. 관리자 화면은 오래된 것부터 본다
func (r *WritingRepository) ListPending(page, limit int) ([]model.WritingSubmission, int64, error) {
	query := r.DB.Model(&model.WritingSubmission{}).Where("status = ?", model.WritingPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.WritingSubmission
	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *WritingRepository) Delete(id uint) error {
	return r.DB.Delete(&model.WritingSubmission{}, id).Error
}
