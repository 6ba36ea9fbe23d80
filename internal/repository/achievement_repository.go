package repository

import (
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByCode(code model.AchievementCode) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where("code = ?", code).First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// FindUnlockedByUserID 用户已解锁的徽章
func (r *AchievementRepository) FindUnlockedByUserID(userID uint) ([]model.UserAchievement, error) {
	var unlocked []model.UserAchievement
	err := r.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	return unlocked, err
}

// Unlock 解锁徽章，重复解锁静默忽略
func (r *AchievementRepository) Unlock(userID, achievementID uint) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}).Error
}

func (r *AchievementRepository) HasUnlocked(userID, achievementID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}
