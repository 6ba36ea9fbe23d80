package service

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// TaskService 学习计划时间线的任务管理

type TaskService struct {
	TaskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{TaskRepo: taskRepo}
}

type TaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	SubjectID   *uint     `json:"subjectId"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Order       int       `json:"order"`
}

func (s *TaskService) CreateTask(userID uint, req TaskRequest) (*model.StudyTask, error) {
	task := &model.StudyTask{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		DueDate:     req.DueDate,
		Order:       req.Order,
	}
	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(userID, taskID uint, req TaskRequest) (*model.StudyTask, error) {
	task, err := s.findOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.SubjectID = req.SubjectID
	task.DueDate = req.DueDate
	task.Order = req.Order

	if err := s.TaskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateStatus(userID, taskID uint, status model.TaskStatus) error {
	if _, err := s.findOwned(userID, taskID); err != nil {
		return err
	}
	return s.TaskRepo.UpdateStatus(taskID, status)
}

func (s *TaskService) DeleteTask(userID, taskID uint) error {
	if _, err := s.findOwned(userID, taskID); err != nil {
		return err
	}
	return s.TaskRepo.Delete(taskID)
}

func (s *TaskService) ListTasks(userID uint) ([]model.StudyTask, error) {
	return s.TaskRepo.FindByUserID(userID)
}

func (s *TaskService) findOwned(userID, taskID uint) (*model.StudyTask, error) {
	task, err := s.TaskRepo.FindByIDAndUserID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
