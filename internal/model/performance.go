package model

// SubtopicPerformance 记录学习者在某个子主题上的掌握情况。
// Goal/Weight/PriorityMultiplier 允许为空，推荐引擎自行应用默认值
// （goal=100, weight=1, multiplier=1），空值不代表"无数据"。
type SubtopicPerformance struct {
	BaseModel
	UserID     uint `gorm:"index:idx_user_subtopic,unique;type:bigint unsigned;not null" json:"userId"`
	SubtopicID uint `gorm:"index:idx_user_subtopic,unique;type:bigint unsigned;not null" json:"subtopicId"`
	// 当前掌握百分比 [0,100]
	Performance float64 `gorm:"default:0" json:"performance"`
	// 目标掌握百分比 [0,100]
	Goal *float64 `json:"goal,omitempty"`
	// 子主题重要性权重（如考试占比）
	Weight *float64 `json:"weight,omitempty"`
	// 人工设置的紧急度系数
	PriorityMultiplier *float64 `json:"priorityMultiplier,omitempty"`
}

func (SubtopicPerformance) TableName() string {
	return "subtopic_performances"
}
