package model

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskProgress  TaskStatus = "in_progress"
	TaskCompleted TaskStatus = "completed"
)

// StudyTask 学习计划时间线上的待办任务
type StudyTask struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:enum('pending','in_progress','completed');default:'pending'" json:"status"`
	SubjectID   *uint      `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	DueDate     time.Time  `gorm:"index" json:"dueDate"`
	Order       int        `gorm:"default:0" json:"order"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}
