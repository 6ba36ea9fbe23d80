package model

import (
	"time"
)

type ExerciseQuestion struct {
	BaseModel
	SubtopicID  uint   `gorm:"index;type:bigint unsigned;not null" json:"subtopicId"`
	Statement   string `gorm:"type:text;not null" json:"statement"`
	OptionA     string `gorm:"type:text" json:"optionA"`
	OptionB     string `gorm:"type:text" json:"optionB"`
	OptionC     string `gorm:"type:text" json:"optionC"`
	OptionD     string `gorm:"type:text" json:"optionD"`
	OptionE     string `gorm:"type:text" json:"optionE"`
	Answer      string `gorm:"size:1;not null" json:"-"` // A-E
	Explanation string `gorm:"type:text" json:"explanation,omitempty"`
	// 难度 1-5
	Difficulty int  `gorm:"default:2" json:"difficulty"`
	Enabled    bool `gorm:"default:true" json:"enabled"`
}

func (ExerciseQuestion) TableName() string {
	return "exercise_questions"
}

type SessionMode string

const (
	// 推荐引擎生成的自动练习
	SessionModeAuto SessionMode = "auto"
	// 用户手动选择范围的练习
	SessionModeManual SessionMode = "manual"
)

type ExerciseSession struct {
	UUIDBase
	UserID uint        `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Mode   SessionMode `gorm:"type:enum('auto','manual');default:'manual'" json:"mode"`
	// 生成会话时采用的推荐策略（auto 模式）
	Strategy   string     `gorm:"size:30" json:"strategy,omitempty"`
	SubtopicID *uint      `gorm:"type:bigint unsigned" json:"subtopicId,omitempty"`
	TopicID    *uint      `gorm:"type:bigint unsigned" json:"topicId,omitempty"`
	SubjectID  *uint      `gorm:"type:bigint unsigned" json:"subjectId,omitempty"`
	Difficulty *int       `json:"difficulty,omitempty"`
	Finished   bool       `gorm:"default:false" json:"finished"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Score      int        `gorm:"default:0" json:"score"`
	Total      int        `gorm:"default:0" json:"total"`

	Questions []ExerciseQuestion      `gorm:"many2many:exercise_session_questions" json:"questions,omitempty"`
	Answers   []ExerciseSessionAnswer `gorm:"foreignKey:SessionID" json:"answers,omitempty"`
}

func (ExerciseSession) TableName() string {
	return "exercise_sessions"
}

type ExerciseSessionAnswer struct {
	BaseModel
	SessionID  string `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Given      string `gorm:"size:1" json:"given"`
	Correct    bool   `gorm:"default:false" json:"correct"`
}

func (ExerciseSessionAnswer) TableName() string {
	return "exercise_session_answers"
}
