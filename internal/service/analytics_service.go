package service

import (
	"context"
	"encoding/json"
	"fmt"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

// 分析数据短缓存，避免图表页反复聚合
const analyticsCacheTTL = 5 * time.Minute

const analyticsCacheKeyPrefix = "analytics:summary:"

type AnalyticsService struct {
	ActivityRepo    *repository.ActivityRepository
	SessionRepo     *repository.ExerciseSessionRepository
	PerformanceRepo *repository.PerformanceRepository
	SubjectRepo     *repository.SubjectRepository
	Redis           *redis.Client
}

func NewAnalyticsService(
	activityRepo *repository.ActivityRepository,
	sessionRepo *repository.ExerciseSessionRepository,
	performanceRepo *repository.PerformanceRepository,
	subjectRepo *repository.SubjectRepository,
	rdb *redis.Client,
) *AnalyticsService {
	return &AnalyticsService{
		ActivityRepo:    activityRepo,
		SessionRepo:     sessionRepo,
		PerformanceRepo: performanceRepo,
		SubjectRepo:     subjectRepo,
		Redis:           rdb,
	}
}

type AnalyticsSummary struct {
	DailyStudyTime   []model.DailyStudyTime   `json:"dailyStudyTime"`
	SubtopicAccuracy []model.SubtopicAccuracy `json:"subtopicAccuracy"`
	PerformanceGaps  []model.PerformanceGap   `json:"performanceGaps"`
}

// GetSummary 聚合学习时长、正确率和掌握度差距，结果短缓存
func (s *AnalyticsService) GetSummary(ctx context.Context, userID uint) (*AnalyticsSummary, error) {
	cacheKey := fmt.Sprintf("%s%d", analyticsCacheKeyPrefix, userID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary AnalyticsSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	daily, err := s.ActivityRepo.SumDurationByDay(userID, 30)
	if err != nil {
		return nil, err
	}

	accuracy, err := s.SessionRepo.AccuracyGroupedBySubtopic(userID)
	if err != nil {
		return nil, err
	}

	gaps, err := s.getPerformanceGaps(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		DailyStudyTime:   daily,
		SubtopicAccuracy: accuracy,
		PerformanceGaps:  gaps,
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, analyticsCacheTTL)
		}
	}

	return summary, nil
}

func (s *AnalyticsService) getPerformanceGaps(ctx context.Context, userID uint) ([]model.PerformanceGap, error) {
	records, err := s.PerformanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	gaps := make([]model.PerformanceGap, 0, len(records))
	for _, record := range records {
		goal := defaultGoal
		if record.Goal != nil {
			goal = *record.Goal
		}

		name := ""
		if subtopic, err := s.SubjectRepo.FindSubtopicByID(record.SubtopicID); err == nil {
			name = subtopic.Name
		}

		gaps = append(gaps, model.PerformanceGap{
			SubtopicID:  record.SubtopicID,
			Subtopic:    name,
			Performance: record.Performance,
			Goal:        goal,
			Gap:         goal - record.Performance,
		})
	}
	return gaps, nil
}

// InvalidateCache 练习提交后清掉旧汇总
func (s *AnalyticsService) InvalidateCache(ctx context.Context, userID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, fmt.Sprintf("%s%d", analyticsCacheKeyPrefix, userID))
}
