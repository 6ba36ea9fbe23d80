package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	// 推荐引擎错误分类：档案缺失和仓储故障立即中止，
	// 数据缺失类错误可在策略回退链中恢复
	ErrNoLearnerProfile  = errors.New("learner profile not found")
	ErrNoPerformanceData = errors.New("not enough performance data yet")
	ErrNoRecentActivity  = errors.New("no recent study activity")

	ErrSessionNotFound     = errors.New("exercise session not found")
	ErrSessionFinished     = errors.New("exercise session already finished")
	ErrGoalNotFound        = errors.New("exam goal not found")
	ErrTaskNotFound        = errors.New("study task not found")
	ErrAlreadyCheckedIn    = errors.New("已完成今日签到")
	ErrSettingNotFound     = errors.New("setting not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrQuestionUnavailable = errors.New("no questions available for this target")
)
