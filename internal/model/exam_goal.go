package model

import "time"

type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// ExamGoal 学习者登记的考试目标，两阶段考试的日期驱动推荐策略的时间分期
type ExamGoal struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Institution string     `gorm:"size:255" json:"institution"`
	Status      GoalStatus `gorm:"type:enum('pending','in_progress','completed');default:'pending'" json:"status"`
	// 第一阶段考试日期
	FirstPhaseDate *time.Time `gorm:"type:datetime" json:"firstPhaseDate,omitempty"`
	// 第二阶段考试日期
	SecondPhaseDate *time.Time `gorm:"type:datetime" json:"secondPhaseDate,omitempty"`
}

func (ExamGoal) TableName() string {
	return "exam_goals"
}
