package repository

import (
	"hanja_edu_backend/internal/model"

	"gorm.io/gorm"
)

type HanziRepository struct {
	DB *gorm.DB
}

func NewHanziRepository(db *gorm.DB) *HanziRepository {
	return &HanziRepository{DB: db}
}

func (r *HanziRepository) Create(hanzi *model.HanziCharacter) error {
	return r.DB.Create(hanzi).Error
}

func (r *HanziRepository) FindByID(id uint) (*model.HanziCharacter, error) {
	var hanzi model.HanziCharacter
	err := r.DB.Preload("RelatedWords").First(&hanzi, id).Error
	return &hanzi, err
}

func (r *HanziRepository) FindByCharacter(character string, grade float64) (*model.HanziCharacter, error) {
	var hanzi model.HanziCharacter
	err := r.DB.Preload("RelatedWords").
		Where("character = ? AND grade = ?", character, grade).
		First(&hanzi).Error
	return &hanzi, err
}

// FindByGrade 시험 출제 풀. 연관 단어까지 한 번에 읽는다
func (r *HanziRepository) FindByGrade(grade float64) ([]model.HanziCharacter, error) {
	var list []model.HanziCharacter
	err := r.DB.Preload("RelatedWords").
		Where("grade = ?", grade).
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *HanziRepository) List(grade float64, page, limit int, keyword string) ([]model.HanziCharacter, int64, error) {
	query := r.DB.Model(&model.HanziCharacter{})
	if grade > 0 {
		query = query.Where("grade = ?", grade)
	}
	if keyword != "" {
		query = query.Where("`character` LIKE ? OR meaning LIKE ? OR sound LIKE ?",
			"%"+keyword+"%", "%"+keyword+"%", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.HanziCharacter
	offset := (page - 1) * limit
	err := query.Preload("RelatedWords").
		Order("grade desc, id asc").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *HanziRepository) Update(hanzi *model.HanziCharacter) error {
	return r.DB.Save(hanzi).Error
}

// Delete 한자와 연관 단어를 함께 지운다
func (r *HanziRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hanzi_character_id = ?", id).Delete(&model.RelatedWord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.HanziCharacter{}, id).Error
	})
}

func (r *HanziRepository) CountByGrade(grade float64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.HanziCharacter{}).Where("grade = ?", grade).Count(&count).Error
	return count, err
}

func (r *HanziRepository) CreateWord(word *model.RelatedWord) error {
	return r.DB.Create(word).Error
}

func (r *HanziRepository) DeleteWord(id uint) error {
	return r.DB.Delete(&model.RelatedWord{}, id).Error
}

// ReplaceWords 한자의 단어 목록을 통째로 교체한다. 관리자 수정 화면에서 쓴다
func (r *HanziRepository) ReplaceWords(hanziID uint, words []model.RelatedWord) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hanzi_character_id = ?", hanziID).Delete(&model.RelatedWord{}).Error; err != nil {
			return err
		}
		for i := range words {
			words[i].ID = 0
			words[i].HanziCharacterID = hanziID
		}
		if len(words) == 0 {
			return nil
		}
		return tx.Create(&words).Error
	})
}

func (r *HanziRepository) UpdateStrokeMedia(id uint, videoURL, thumbURL string) error {
	return r.DB.Model(&model.HanziCharacter{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stroke_video": videoURL,
			"stroke_thumb": thumbURL,
		}).Error
}

// Grades 데이터가 존재하는 급수 목록 (내림차순: 8급 → 1급)
func (r *HanziRepository) Grades() ([]float64, error) {
	var grades []float64
	err := r.DB.Model(&model.HanziCharacter{}).
		Distinct("grade").
		Order("grade desc").
		Pluck("grade", &grades).Error
	return grades, err
}
