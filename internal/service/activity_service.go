package service

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

// ActivityService 学习活动记录：推荐引擎的复习策略从这里读近期完成的活动

type ActivityService struct {
	ActivityRepo *repository.ActivityRepository
}

func NewActivityService(activityRepo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{ActivityRepo: activityRepo}
}

type ActivityRequest struct {
	Title        string             `json:"title" binding:"required"`
	Type         model.ActivityType `json:"type" binding:"required,oneof=study revision exercise homework"`
	SubtopicID   *uint              `json:"subtopicId"`
	TopicID      *uint              `json:"topicId"`
	SubjectID    *uint              `json:"subjectId"`
	ScheduledFor time.Time          `json:"scheduledFor" binding:"required"`
	Notes        string             `json:"notes"`
}

func (s *ActivityService) CreateActivity(userID uint, req ActivityRequest) (*model.StudyActivity, error) {
	activity := &model.StudyActivity{
		UserID:       userID,
		Title:        req.Title,
		Type:         req.Type,
		SubtopicID:   req.SubtopicID,
		TopicID:      req.TopicID,
		SubjectID:    req.SubjectID,
		ScheduledFor: req.ScheduledFor,
		Notes:        req.Notes,
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// CompleteActivity 标记完成并记录实际时长
func (s *ActivityService) CompleteActivity(userID, activityID uint, durationMinutes int) error {
	activity, err := s.ActivityRepo.FindByIDAndUserID(activityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	return s.ActivityRepo.MarkCompleted(activity.ID, durationMinutes)
}

func (s *ActivityService) ListWeek(userID uint, anchor time.Time) ([]model.StudyActivity, error) {
	weekday := int(anchor.Weekday())
	if weekday == 0 {
		weekday = 7 // 周从周一开始
	}
	start := truncateToDay(anchor).AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7)
	return s.ActivityRepo.FindByUserAndRange(userID, start, end)
}

func (s *ActivityService) DeleteActivity(userID, activityID uint) error {
	activity, err := s.ActivityRepo.FindByIDAndUserID(activityID, userID)
	if err != nil {
		return err
	}
	return s.ActivityRepo.Delete(activity.ID)
}
