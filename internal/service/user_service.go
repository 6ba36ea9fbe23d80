package service

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
	Achievement *AchievementService
}

func NewUserService(
	userRepo *repository.UserRepository,
	checkinRepo *repository.CheckinRepository,
	achievementService *AchievementService,
) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
		Achievement: achievementService,
	}
}

type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = avatarURL
	return s.UserRepo.Update(user)
}

type CheckinResult struct {
	StreakDays int                 `json:"streakDays"`
	Unlocked   []model.Achievement `json:"unlockedAchievements,omitempty"`
}

// Checkin 每日签到，连续天数按昨天是否签到接续
func (s *UserService) Checkin(userID uint) (*CheckinResult, error) {
	now := time.Now()

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return nil, util.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	streak := 1
	if latest, err := s.CheckinRepo.FindLatest(userID); err == nil {
		yesterday := now.AddDate(0, 0, -1)
		if sameDay(latest.CheckinAt, yesterday) {
			streak = latest.StreakDays + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.CheckinRepo.Create(&model.Checkin{
		UserID:     userID,
		CheckinAt:  now,
		StreakDays: streak,
	}); err != nil {
		return nil, err
	}

	unlocked, _ := s.Achievement.CheckStreakAchievements(userID, streak)

	return &CheckinResult{StreakDays: streak, Unlocked: unlocked}, nil
}

func (s *UserService) IsCheckedInToday(userID uint) (bool, error) {
	_, err := s.CheckinRepo.FindByUserAndDate(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
