package model

import "time"

type ActivityType string

const (
	ActivityStudy    ActivityType = "study"
	ActivityRevision ActivityType = "revision"
	ActivityExercise ActivityType = "exercise"
	ActivityHomework ActivityType = "homework"
)

type ActivityStatus string

const (
	ActivityPending   ActivityStatus = "pending"
	ActivityCompleted ActivityStatus = "completed"
)

// StudyActivity 学习计划中的一条活动记录。
// SubtopicID/TopicID/SubjectID 最多填一个，表示活动针对的最具体层级。
type StudyActivity struct {
	BaseModel
	UserID          uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Type            ActivityType   `gorm:"type:enum('study','revision','exercise','homework');default:'study'" json:"type"`
	Status          ActivityStatus `gorm:"type:enum('pending','completed');default:'pending'" json:"status"`
	SubtopicID      *uint          `gorm:"index;type:bigint unsigned" json:"subtopicId,omitempty"`
	TopicID         *uint          `gorm:"index;type:bigint unsigned" json:"topicId,omitempty"`
	SubjectID       *uint          `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	ScheduledFor    time.Time      `gorm:"index" json:"scheduledFor"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	DurationMinutes int            `gorm:"default:0" json:"durationMinutes"`
	Notes           string         `gorm:"type:text" json:"notes"`
}

func (StudyActivity) TableName() string {
	return "study_activities"
}
