package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type RecommendationStrategy string

const (
	// 弱项优先：按优先级分值加权随机
	StrategyImprovement RecommendationStrategy = "improvement"
	// 复习优先：从近期完成的活动里挑选
	StrategyReview RecommendationStrategy = "review"
	// 按时间分期自动决定
	StrategyBalanced RecommendationStrategy = "balanced"
)

const (
	// 加权随机只在排名前3的候选中进行
	improvementCandidates = 3
	// 复习策略回看最近3条已完成的非作业活动
	reviewActivityWindow = 3
	// 考试周期强制的题目难度。占位常量：是否应随考试临近程度
	// 变化尚无产品结论，先保持固定值
	examPeriodDifficulty = 3
)

// RecommendationTarget 每次请求即时生成、不落库，直接用于创建练习会话
type RecommendationTarget struct {
	SubtopicID *uint                  `json:"subtopic,omitempty"`
	TopicID    *uint                  `json:"topic,omitempty"`
	SubjectID  *uint                  `json:"subject,omitempty"`
	Mode       model.SessionMode      `json:"mode"`
	Strategy   RecommendationStrategy `json:"strategy"`
	Phase      StudyPhase             `json:"phase,omitempty"`
	Difficulty *int                   `json:"difficulty,omitempty"`
}

// 仓储窄接口，测试时用内存实现替换
type profileSource interface {
	FindByID(id uint) (*model.User, error)
}

type performanceSource interface {
	FindByUserID(ctx context.Context, userID uint) ([]model.SubtopicPerformance, error)
}

type milestoneSource interface {
	FindByUserID(ctx context.Context, userID uint) ([]model.ExamGoal, error)
}

type activitySource interface {
	FindRecentCompleted(ctx context.Context, userID uint, excludeTypes []model.ActivityType, limit int) ([]model.StudyActivity, error)
}

type settingSource interface {
	GetInt(ctx context.Context, key string) (*int, error)
}

// randSource 隔离随机源，测试时注入确定性序列
type randSource interface {
	Float64() float64
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.Intn(n) }

// errNoActivities 内部哨兵：复习窗口为空，允许回退到弱项策略；
// 与"活动存在但没有任何层级标签"（ErrNoRecentActivity）区分
var errNoActivities = errors.New("no completed activities in review window")

// RecommendationService 组合优先级排序、时间分期和加权随机，
// 决定下一批练习题从哪个子主题/主题/学科出。无状态，可并发调用。
type RecommendationService struct {
	UserRepo        profileSource
	PerformanceRepo performanceSource
	GoalRepo        milestoneSource
	ActivityRepo    activitySource
	SettingRepo     settingSource
	rng             randSource
	now             func() time.Time
}

func NewRecommendationService(
	userRepo *repository.UserRepository,
	performanceRepo *repository.PerformanceRepository,
	goalRepo *repository.ExamGoalRepository,
	activityRepo *repository.ActivityRepository,
	settingRepo *repository.AppSettingRepository,
) *RecommendationService {
	return &RecommendationService{
		UserRepo:        userRepo,
		PerformanceRepo: performanceRepo,
		GoalRepo:        goalRepo,
		ActivityRepo:    activityRepo,
		SettingRepo:     settingRepo,
		rng:             globalRand{},
		now:             time.Now,
	}
}

// Recommend 产出一个推荐目标。strategy 为空时按时间分期自动决定。
// 数据缺失类错误在回退链内消化，只有仓储故障和档案缺失直接中止。
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, strategy RecommendationStrategy) (*RecommendationTarget, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoLearnerProfile
		}
		return nil, err
	}

	switch strategy {
	case StrategyImprovement:
		return s.improvementWithFallback(ctx, userID, nil)
	case StrategyReview:
		return s.reviewWithFallback(ctx, userID)
	case StrategyBalanced, "":
		return s.balanced(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown recommendation strategy %q", strategy)
	}
}

// balanced 先判定时间分期，再分派到具体策略
func (s *RecommendationService) balanced(ctx context.Context, userID uint) (*RecommendationTarget, error) {
	goals, err := s.GoalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	intensiveWindow, err := s.settingOrDefault(ctx, util.SettingIntensiveWindowDays, DefaultIntensiveWindowDays)
	if err != nil {
		return nil, err
	}
	theoreticalThreshold, err := s.settingOrDefault(ctx, util.SettingTheoreticalThresholdDays, DefaultTheoreticalThresholdDays)
	if err != nil {
		return nil, err
	}

	now := s.now()
	minFirst, maxSecond := DeriveMilestoneDates(goals, now)
	phase := ClassifyStudyPhase(now, minFirst, maxSecond, intensiveWindow, theoreticalThreshold)

	switch phase {
	case PhaseExamPeriod:
		target, err := s.improvementWithFallback(ctx, userID, &phase)
		if err != nil {
			return nil, err
		}
		difficulty := examPeriodDifficulty
		target.Difficulty = &difficulty
		return target, nil

	case PhasePreIntensive:
		target, err := s.pickReview(ctx, userID)
		if err == nil {
			target.Phase = phase
			return target, nil
		}
		if errors.Is(err, errNoActivities) || errors.Is(err, util.ErrNoRecentActivity) {
			return s.improvementWithFallback(ctx, userID, &phase)
		}
		return nil, err

	default: // PhaseWeaknesses 和 PhaseDefault 都走弱项优先
		return s.improvementWithFallback(ctx, userID, &phase)
	}
}

// improvementWithFallback 弱项优先；没有任何掌握度记录时退回复习策略，
// 复习也拿不出目标则统一上报"数据不足"
func (s *RecommendationService) improvementWithFallback(ctx context.Context, userID uint, phase *StudyPhase) (*RecommendationTarget, error) {
	target, err := s.pickImprovement(ctx, userID)
	if err == nil {
		if phase != nil {
			target.Phase = *phase
		}
		return target, nil
	}
	if !errors.Is(err, util.ErrNoPerformanceData) {
		return nil, err
	}

	target, reviewErr := s.pickReview(ctx, userID)
	if reviewErr == nil {
		if phase != nil {
			target.Phase = *phase
		}
		return target, nil
	}
	if errors.Is(reviewErr, errNoActivities) || errors.Is(reviewErr, util.ErrNoRecentActivity) {
		return nil, util.ErrNoPerformanceData
	}
	return nil, reviewErr
}

// reviewWithFallback 复习优先；复习窗口为空时顺延到弱项策略
func (s *RecommendationService) reviewWithFallback(ctx context.Context, userID uint) (*RecommendationTarget, error) {
	target, err := s.pickReview(ctx, userID)
	if err == nil {
		return target, nil
	}
	if errors.Is(err, errNoActivities) {
		return s.improvementWithFallback(ctx, userID, nil)
	}
	return nil, err
}

// pickImprovement 全量掌握度排序，前3名按分值加权随机挑一个
func (s *RecommendationService) pickImprovement(ctx context.Context, userID uint) (*RecommendationTarget, error) {
	records, err := s.PerformanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := RankSubtopicPriorities(records)
	if len(ranked) == 0 {
		return nil, util.ErrNoPerformanceData
	}

	top := ranked
	if len(top) > improvementCandidates {
		top = top[:improvementCandidates]
	}

	picked := s.weightedPick(top)
	subtopicID := picked.SubtopicID
	return &RecommendationTarget{
		SubtopicID: &subtopicID,
		Mode:       model.SessionModeAuto,
		Strategy:   StrategyImprovement,
	}, nil
}

// weightedPick 分值截断到非负后加权随机；全部非正分时确定性返回排名第一
func (s *RecommendationService) weightedPick(top []SubtopicPriority) SubtopicPriority {
	total := 0.0
	for _, candidate := range top {
		total += math.Max(0, candidate.Score)
	}
	if total <= 0 {
		return top[0]
	}

	remaining := s.rng.Float64() * total
	for _, candidate := range top {
		remaining -= math.Max(0, candidate.Score)
		if remaining <= 0 {
			return candidate
		}
	}
	return top[len(top)-1]
}

// pickReview 最近完成的非作业活动中均匀随机挑一条，
// 按 子主题 > 主题 > 学科 取最具体的标签
func (s *RecommendationService) pickReview(ctx context.Context, userID uint) (*RecommendationTarget, error) {
	activities, err := s.ActivityRepo.FindRecentCompleted(ctx, userID,
		[]model.ActivityType{model.ActivityHomework}, reviewActivityWindow)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, errNoActivities
	}

	picked := activities[s.rng.Intn(len(activities))]

	target := &RecommendationTarget{
		Mode:     model.SessionModeAuto,
		Strategy: StrategyReview,
	}
	switch {
	case picked.SubtopicID != nil:
		target.SubtopicID = picked.SubtopicID
	case picked.TopicID != nil:
		target.TopicID = picked.TopicID
	case picked.SubjectID != nil:
		target.SubjectID = picked.SubjectID
	default:
		return nil, util.ErrNoRecentActivity
	}
	return target, nil
}

func (s *RecommendationService) settingOrDefault(ctx context.Context, key string, fallback int) (int, error) {
	value, err := s.SettingRepo.GetInt(ctx, key)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return fallback, nil
	}
	return *value, nil
}
