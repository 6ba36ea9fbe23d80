package model

// 三级课程层次：学科 > 主题 > 子主题，子主题是最具体的单位

type Subject struct {
	BaseModel
	Name    string  `gorm:"size:255;not null" json:"name"`
	Color   string  `gorm:"size:20" json:"color"`
	Order   int     `gorm:"default:0" json:"order"`
	Enabled bool    `gorm:"default:true" json:"enabled"`
	Topics  []Topic `gorm:"foreignKey:SubjectID" json:"topics,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

type Topic struct {
	BaseModel
	SubjectID uint       `gorm:"index;type:bigint unsigned;not null" json:"subjectId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Order     int        `gorm:"default:0" json:"order"`
	Subtopics []Subtopic `gorm:"foreignKey:TopicID" json:"subtopics,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

type Subtopic struct {
	BaseModel
	TopicID uint   `gorm:"index;type:bigint unsigned;not null" json:"topicId"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Order   int    `gorm:"default:0" json:"order"`
	// 考试大纲中该子主题的分值比重，随科目树返回给前端参考；
	// 优先级计算用的是每个学生自己的 SubtopicPerformance.Weight
	ExamWeight float64 `gorm:"default:1" json:"examWeight"`
}

func (Subtopic) TableName() string {
	return "subtopics"
}
