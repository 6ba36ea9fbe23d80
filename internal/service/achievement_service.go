package service

import (
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"time"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	SessionRepo     *repository.ExerciseSessionRepository
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	sessionRepo *repository.ExerciseSessionRepository,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		SessionRepo:     sessionRepo,
	}
}

type UserAchievements struct {
	TotalXP      int                     `json:"totalXp"`
	CurrentLevel int                     `json:"currentLevel"`
	NextLevelXP  int                     `json:"nextLevelXp"`
	Badges       []model.UserAchievement `json:"badges"`
	Leaderboard  []LeaderboardEntry      `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.AchievementRepo.FindUnlockedByUserID(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := calculateLevel(user.XP)

	return &UserAchievements{
		TotalXP:      user.XP,
		CurrentLevel: level,
		NextLevelXP:  nextLevelXP,
		Badges:       badges,
		Leaderboard:  leaderboard,
	}, nil
}

func (s *AchievementService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:   i + 1,
			User:   user.Name,
			XP:     user.XP,
			Avatar: user.Avatar,
		}
	}
	return leaderboard, nil
}

// CheckSessionAchievements 练习会话结束后的徽章检查，返回本次新解锁的徽章
func (s *AchievementService) CheckSessionAchievements(userID uint) ([]model.Achievement, error) {
	var unlocked []model.Achievement

	finished, err := s.SessionRepo.CountFinishedByUser(userID)
	if err != nil {
		return nil, err
	}
	if finished >= 1 {
		if a := s.tryUnlock(userID, model.AchievementFirstSession); a != nil {
			unlocked = append(unlocked, *a)
		}
	}

	correct, err := s.SessionRepo.CountCorrectAnswers(userID)
	if err != nil {
		return nil, err
	}
	if correct >= 100 {
		if a := s.tryUnlock(userID, model.AchievementHundredRight); a != nil {
			unlocked = append(unlocked, *a)
		}
	}

	now := time.Now()
	if h := now.Hour(); h >= 22 || h < 5 {
		if a := s.tryUnlock(userID, model.AchievementNightOwl); a != nil {
			unlocked = append(unlocked, *a)
		}
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		if a := s.tryUnlock(userID, model.AchievementWeekendWorker); a != nil {
			unlocked = append(unlocked, *a)
		}
	}

	return unlocked, nil
}

// CheckStreakAchievements 签到后的连续天数徽章检查
func (s *AchievementService) CheckStreakAchievements(userID uint, streakDays int) ([]model.Achievement, error) {
	var unlocked []model.Achievement

	if streakDays >= 7 {
		if a := s.tryUnlock(userID, model.AchievementStreak7); a != nil {
			unlocked = append(unlocked, *a)
		}
	}
	if streakDays >= 30 {
		if a := s.tryUnlock(userID, model.AchievementStreak30); a != nil {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked, nil
}

// tryUnlock 幂等解锁，新解锁时发放经验奖励并返回徽章
func (s *AchievementService) tryUnlock(userID uint, code model.AchievementCode) *model.Achievement {
	achievement, err := s.AchievementRepo.FindByCode(code)
	if err != nil {
		return nil
	}

	has, err := s.AchievementRepo.HasUnlocked(userID, achievement.ID)
	if err != nil || has {
		return nil
	}

	if err := s.AchievementRepo.Unlock(userID, achievement.ID); err != nil {
		return nil
	}
	s.UserRepo.AddXP(userID, achievement.XPReward)
	return achievement
}

// calculateLevel 等级曲线：每级所需经验递增 100
func calculateLevel(xp int) (level, nextLevelXP int) {
	level = 1
	required := 100
	remaining := xp
	for remaining >= required {
		remaining -= required
		level++
		required += 100
	}
	return level, required - remaining
}
