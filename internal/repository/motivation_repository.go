package repository

import (
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
)

type MotivationRepository struct {
	DB *gorm.DB
}

func NewMotivationRepository(db *gorm.DB) *MotivationRepository {
	return &MotivationRepository{DB: db}
}

// GetCurrent 当前启用的激励短句
func (r *MotivationRepository) GetCurrent() (*model.Motivation, error) {
	var motivation model.Motivation
	err := r.DB.Where("is_enabled = ? AND is_currently_used = ?", true, true).First(&motivation).Error
	if err != nil {
		return nil, err
	}
	return &motivation, nil
}

func (r *MotivationRepository) FindAll() ([]model.Motivation, error) {
	var motivations []model.Motivation
	err := r.DB.Find(&motivations).Error
	return motivations, err
}

func (r *MotivationRepository) Create(motivation *model.Motivation) error {
	return r.DB.Create(motivation).Error
}

// Switch 切换当前使用的短句，整表先清后置
func (r *MotivationRepository) Switch(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Motivation{}).
			Where("is_currently_used = ?", true).
			Update("is_currently_used", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Motivation{}).
			Where("id = ?", id).
			Update("is_currently_used", true).Error
	})
}
