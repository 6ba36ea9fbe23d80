package service

import (
	"studytrack_backend/internal/model"
	"time"
)

// StudyPhase 表示"今天"相对考试里程碑的时间分期，决定默认推荐策略
type StudyPhase string

const (
	// 第一阶段考试临近，主攻弱项
	PhaseWeaknesses StudyPhase = "weaknesses"
	// 处于两阶段考试之间的窗口，高难度优先级练习
	PhaseExamPeriod StudyPhase = "exam_period"
	// 距离考试还很远，巩固近期学过的内容
	PhasePreIntensive StudyPhase = "pre_intensive"
	// 无里程碑或不属于以上任一情况
	PhaseDefault StudyPhase = "default"
)

// app_settings 未配置时的缺省窗口
const (
	DefaultIntensiveWindowDays      = 30
	DefaultTheoreticalThresholdDays = 120
)

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClassifyStudyPhase 时间分期判定，按声明顺序首个命中生效：
//  1. Weaknesses：已知最早一阶段日期，且今天落在 (一阶段 - intensiveWindowDays, 一阶段] 区间内
//  2. ExamPeriod：两个里程碑日期都已知，且今天在 [最早一阶段, 最晚二阶段] 内
//  3. PreIntensive：已知最早一阶段日期，且今天早于 (一阶段 - theoreticalThresholdDays)
//  4. Default：其余情况（包括完全没有里程碑）
//
// 窗口天数由调用方传入，保持本函数纯净可测
func ClassifyStudyPhase(today time.Time, minFirstPhase, maxSecondPhase *time.Time, intensiveWindowDays, theoreticalThresholdDays int) StudyPhase {
	day := truncateToDay(today)

	if minFirstPhase != nil {
		first := truncateToDay(*minFirstPhase)

		windowStart := first.AddDate(0, 0, -intensiveWindowDays)
		if day.After(windowStart) && !day.After(first) {
			return PhaseWeaknesses
		}

		if maxSecondPhase != nil {
			second := truncateToDay(*maxSecondPhase)
			if !day.Before(first) && !day.After(second) {
				return PhaseExamPeriod
			}
		}

		if day.Before(first.AddDate(0, 0, -theoreticalThresholdDays)) {
			return PhasePreIntensive
		}
	}

	return PhaseDefault
}

// DeriveMilestoneDates 从考试目标推导分期判定所需的两个日期：
// minFirstPhase 取二阶段仍在未来的目标中最早的一阶段日期；
// maxSecondPhase 取所有二阶段在未来的目标中最晚的二阶段日期，
// 与一阶段日期是否存在无关。
func DeriveMilestoneDates(goals []model.ExamGoal, now time.Time) (minFirstPhase, maxSecondPhase *time.Time) {
	for i := range goals {
		goal := goals[i]
		if goal.SecondPhaseDate == nil || !goal.SecondPhaseDate.After(now) {
			continue
		}

		if goal.FirstPhaseDate != nil {
			if minFirstPhase == nil || goal.FirstPhaseDate.Before(*minFirstPhase) {
				minFirstPhase = goal.FirstPhaseDate
			}
		}

		if maxSecondPhase == nil || goal.SecondPhaseDate.After(*maxSecondPhase) {
			maxSecondPhase = goal.SecondPhaseDate
		}
	}
	return minFirstPhase, maxSecondPhase
}
