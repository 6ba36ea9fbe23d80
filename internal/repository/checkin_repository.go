package repository

import (
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

func (r *CheckinRepository) Create(checkin *model.Checkin) error {
	return r.DB.Create(checkin).Error
}

// FindLatest 最近一次签到
func (r *CheckinRepository) FindLatest(userID uint) (*model.Checkin, error) {
	var checkin model.Checkin
	err := r.DB.Where("user_id = ?", userID).Order("checkin_at DESC").First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// FindByUserAndDate 某天是否已签到
func (r *CheckinRepository) FindByUserAndDate(userID uint, date time.Time) (*model.Checkin, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var checkin model.Checkin
	err := r.DB.Where("user_id = ? AND checkin_at >= ? AND checkin_at < ?", userID, dayStart, dayEnd).
		First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}
