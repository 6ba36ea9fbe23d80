package repository

import (
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// TaskRepository 处理学习计划任务的数据访问

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.StudyTask) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) Update(task *model.StudyTask) error {
	return r.DB.Model(&model.StudyTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"subject_id":  task.SubjectID,
			"due_date":    task.DueDate,
			"order":       task.Order,
			"updated_at":  time.Now(),
		}).Error
}

func (r *TaskRepository) Delete(id uint) error {
	return r.DB.Delete(&model.StudyTask{}, id).Error
}

func (r *TaskRepository) FindByIDAndUserID(id, userID uint) (*model.StudyTask, error) {
	var task model.StudyTask
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByUserID(userID uint) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.Where("user_id = ?", userID).Order("due_date").Find(&tasks).Error
	return tasks, err
}

// FindByUserAndDate 某一天到期的任务
func (r *TaskRepository) FindByUserAndDate(userID uint, date time.Time) ([]*model.StudyTask, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var tasks []*model.StudyTask
	err := r.DB.Where("user_id = ? AND due_date >= ? AND due_date < ?", userID, dayStart, dayEnd).
		Order("`order`").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) UpdateStatus(id uint, status model.TaskStatus) error {
	return r.DB.Model(&model.StudyTask{}).
		Where("id = ?", id).
		Update("status", status).Error
}
