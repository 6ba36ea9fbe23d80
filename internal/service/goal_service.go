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

// GoalService 考试目标管理，里程碑日期供推荐引擎做时间分期

type GoalService struct {
	GoalRepo    *repository.ExamGoalRepository
	Achievement *AchievementService
}

func NewGoalService(goalRepo *repository.ExamGoalRepository, achievementService *AchievementService) *GoalService {
	return &GoalService{GoalRepo: goalRepo, Achievement: achievementService}
}

type ExamGoalRequest struct {
	Title           string     `json:"title" binding:"required"`
	Institution     string     `json:"institution"`
	FirstPhaseDate  *time.Time `json:"firstPhaseDate"`
	SecondPhaseDate *time.Time `json:"secondPhaseDate"`
}

func (s *GoalService) CreateGoal(userID uint, req ExamGoalRequest) (*model.ExamGoal, error) {
	goal := &model.ExamGoal{
		UserID:          userID,
		Title:           req.Title,
		Institution:     req.Institution,
		FirstPhaseDate:  req.FirstPhaseDate,
		SecondPhaseDate: req.SecondPhaseDate,
	}
	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, err
	}

	// 提前规划徽章：一阶段还在120天以外
	if req.FirstPhaseDate != nil && time.Until(*req.FirstPhaseDate) > 120*24*time.Hour {
		s.Achievement.tryUnlock(userID, model.AchievementEarlyPlanner)
	}

	return goal, nil
}

func (s *GoalService) UpdateGoal(userID, goalID uint, req ExamGoalRequest) (*model.ExamGoal, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = req.Title
	goal.Institution = req.Institution
	goal.FirstPhaseDate = req.FirstPhaseDate
	goal.SecondPhaseDate = req.SecondPhaseDate

	if err := s.GoalRepo.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return err
	}
	return s.GoalRepo.Delete(goalID)
}

func (s *GoalService) ListGoals(ctx context.Context, userID uint) ([]model.ExamGoal, error) {
	return s.GoalRepo.FindByUserID(ctx, userID)
}

func (s *GoalService) findOwned(userID, goalID uint) (*model.ExamGoal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}
