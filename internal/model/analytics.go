package model

// 分析接口使用的派生值结构，不建表

type DailyStudyTime struct {
	Day     string `json:"day"`
	Minutes int    `json:"minutes"`
}

type SubtopicAccuracy struct {
	SubtopicID uint    `json:"subtopicId"`
	Subtopic   string  `json:"subtopic"`
	Answered   int     `json:"answered"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
}

type PerformanceGap struct {
	SubtopicID  uint    `json:"subtopicId"`
	Subtopic    string  `json:"subtopic"`
	Performance float64 `json:"performance"`
	Goal        float64 `json:"goal"`
	Gap         float64 `json:"gap"`
}
