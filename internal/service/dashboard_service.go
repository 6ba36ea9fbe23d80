package service

import (
	"context"
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type DashboardService struct {
	UserRepo          *repository.UserRepository
	TaskRepo          *repository.TaskRepository
	GoalRepo          *repository.ExamGoalRepository
	PerformanceRepo   *repository.PerformanceRepository
	CheckinRepo       *repository.CheckinRepository
	MotivationService *MotivationService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	taskRepo *repository.TaskRepository,
	goalRepo *repository.ExamGoalRepository,
	performanceRepo *repository.PerformanceRepository,
	checkinRepo *repository.CheckinRepository,
	motivationService *MotivationService,
) *DashboardService {
	return &DashboardService{
		UserRepo:          userRepo,
		TaskRepo:          taskRepo,
		GoalRepo:          goalRepo,
		PerformanceRepo:   performanceRepo,
		CheckinRepo:       checkinRepo,
		MotivationService: motivationService,
	}
}

type Dashboard struct {
	TodayTasks      []*model.StudyTask `json:"todayTasks"`
	ExamCountdowns  []ExamCountdown    `json:"examCountdowns"`
	WeakestTopics   []SubtopicPriority `json:"weakestTopics"`
	StreakDays      int                `json:"streakDays"`
	TotalXP         int                `json:"totalXp"`
	DailyMotivation string             `json:"dailyMotivation"`
}

type ExamCountdown struct {
	Title        string `json:"title"`
	DaysToFirst  *int   `json:"daysToFirstPhase,omitempty"`
	DaysToSecond *int   `json:"daysToSecondPhase,omitempty"`
}

func (s *DashboardService) GetUserDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// 今日任务
	tasks, err := s.GetTodayTasks(userID)
	if err != nil {
		return nil, err
	}

	// 考试倒计时
	goals, err := s.GoalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	countdowns := make([]ExamCountdown, 0, len(goals))
	for _, goal := range goals {
		if goal.SecondPhaseDate != nil && !goal.SecondPhaseDate.After(now) {
			continue
		}
		countdown := ExamCountdown{Title: goal.Title}
		if goal.FirstPhaseDate != nil {
			days := int(time.Until(*goal.FirstPhaseDate).Hours() / 24)
			countdown.DaysToFirst = &days
		}
		if goal.SecondPhaseDate != nil {
			days := int(time.Until(*goal.SecondPhaseDate).Hours() / 24)
			countdown.DaysToSecond = &days
		}
		countdowns = append(countdowns, countdown)
	}

	// 最薄弱的子主题，取优先级排名前5
	records, err := s.PerformanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	weakest := RankSubtopicPriorities(records)
	if len(weakest) > 5 {
		weakest = weakest[:5]
	}

	// 连续签到
	streak := 0
	if latest, err := s.CheckinRepo.FindLatest(userID); err == nil {
		if sameDay(latest.CheckinAt, now) || sameDay(latest.CheckinAt, now.AddDate(0, 0, -1)) {
			streak = latest.StreakDays
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 每日激励语
	dailyMotivation, err := s.MotivationService.GetCurrentMotivation()
	if err != nil || dailyMotivation == "" {
		dailyMotivation = "Every exercise you solve is a step closer to your goal."
	}

	return &Dashboard{
		TodayTasks:      tasks,
		ExamCountdowns:  countdowns,
		WeakestTopics:   weakest,
		StreakDays:      streak,
		TotalXP:         user.XP,
		DailyMotivation: dailyMotivation,
	}, nil
}

func (s *DashboardService) GetTodayTasks(userID uint) ([]*model.StudyTask, error) {
	today := time.Now()
	return s.TaskRepo.FindByUserAndDate(userID, today)
}

// UpdateTaskStatus 只允许修改属于自己的任务
func (s *DashboardService) UpdateTaskStatus(userID, taskID uint, status model.TaskStatus) error {
	if _, err := s.TaskRepo.FindByIDAndUserID(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTaskNotFound
		}
		return err
	}
	return s.TaskRepo.UpdateStatus(taskID, status)
}
