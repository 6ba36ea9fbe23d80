package service

import (
	"sort"
	"studytrack_backend/internal/model"
)

// 掌握度记录缺省值
const (
	defaultGoal               = 100.0
	defaultWeight             = 1.0
	defaultPriorityMultiplier = 1.0
)

type SubtopicPriority struct {
	SubtopicID uint    `json:"subtopicId"`
	Score      float64 `json:"priorityScore"`
}

// PriorityScore 计算单条记录的优先级分值：(目标 - 当前掌握度) * 权重 * 紧急度系数。
// 不做截断，负分表示掌握度已超过目标，属于低紧急度而非无数据。
func PriorityScore(record model.SubtopicPerformance) float64 {
	goal := defaultGoal
	if record.Goal != nil {
		goal = *record.Goal
	}
	weight := defaultWeight
	if record.Weight != nil {
		weight = *record.Weight
	}
	multiplier := defaultPriorityMultiplier
	if record.PriorityMultiplier != nil {
		multiplier = *record.PriorityMultiplier
	}
	return (goal - record.Performance) * weight * multiplier
}

// RankSubtopicPriorities 按分值降序排列，同分保持输入顺序。空输入返回空列表。
func RankSubtopicPriorities(records []model.SubtopicPerformance) []SubtopicPriority {
	ranked := make([]SubtopicPriority, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, SubtopicPriority{
			SubtopicID: record.SubtopicID,
			Score:      PriorityScore(record),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
