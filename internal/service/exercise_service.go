package service

import (
	"context"
	"errors"
	"strings"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 每次会话固定抽取的题目数量
const sessionQuestionBatch = 5

// 计算子主题掌握度时回看的会话数
const performanceSessionWindow = 10

// 每答对一题的经验值
const xpPerCorrectAnswer = 10

// ExerciseService 练习会话执行器：消费推荐目标换取题目批次，记录作答。
// 推荐决策本身在 RecommendationService，这里只负责取题和计分。
type ExerciseService struct {
	QuestionRepo    *repository.ExerciseQuestionRepository
	SessionRepo     *repository.ExerciseSessionRepository
	PerformanceRepo *repository.PerformanceRepository
	UserRepo        *repository.UserRepository
	GoalRepo        *repository.ExamGoalRepository
	Achievement     *AchievementService
}

func NewExerciseService(
	questionRepo *repository.ExerciseQuestionRepository,
	sessionRepo *repository.ExerciseSessionRepository,
	performanceRepo *repository.PerformanceRepository,
	userRepo *repository.UserRepository,
	goalRepo *repository.ExamGoalRepository,
	achievementService *AchievementService,
) *ExerciseService {
	return &ExerciseService{
		QuestionRepo:    questionRepo,
		SessionRepo:     sessionRepo,
		PerformanceRepo: performanceRepo,
		UserRepo:        userRepo,
		GoalRepo:        goalRepo,
		Achievement:     achievementService,
	}
}

// StartFromTarget 按推荐目标创建练习会话
func (s *ExerciseService) StartFromTarget(ctx context.Context, userID uint, target *RecommendationTarget) (*model.ExerciseSession, error) {
	var questions []model.ExerciseQuestion
	var err error

	switch {
	case target.SubtopicID != nil:
		questions, err = s.QuestionRepo.FindRandomBySubtopic(ctx, *target.SubtopicID, target.Difficulty, sessionQuestionBatch)
	case target.TopicID != nil:
		questions, err = s.QuestionRepo.FindRandomByTopic(ctx, *target.TopicID, target.Difficulty, sessionQuestionBatch)
	case target.SubjectID != nil:
		questions, err = s.QuestionRepo.FindRandomBySubject(ctx, *target.SubjectID, target.Difficulty, sessionQuestionBatch)
	default:
		return nil, util.ErrQuestionUnavailable
	}
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionUnavailable
	}

	session := &model.ExerciseSession{
		UserID:     userID,
		Mode:       target.Mode,
		Strategy:   string(target.Strategy),
		SubtopicID: target.SubtopicID,
		TopicID:    target.TopicID,
		SubjectID:  target.SubjectID,
		Difficulty: target.Difficulty,
		Questions:  questions,
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// StartManual 用户手动圈定范围的练习会话
func (s *ExerciseService) StartManual(ctx context.Context, userID uint, subtopicID, topicID, subjectID *uint, difficulty *int) (*model.ExerciseSession, error) {
	target := &RecommendationTarget{
		SubtopicID: subtopicID,
		TopicID:    topicID,
		SubjectID:  subjectID,
		Difficulty: difficulty,
		Mode:       model.SessionModeManual,
	}
	return s.StartFromTarget(ctx, userID, target)
}

func (s *ExerciseService) GetSession(ctx context.Context, userID uint, sessionID string) (*model.ExerciseSession, error) {
	session, err := s.SessionRepo.FindByIDAndUserID(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

type SessionResult struct {
	Score    int                    `json:"score"`
	Total    int                    `json:"total"`
	Unlocked []model.Achievement    `json:"unlockedAchievements,omitempty"`
	Answers  []AnswerResult         `json:"answers"`
	Session  *model.ExerciseSession `json:"session"`
}

type AnswerResult struct {
	QuestionID  uint   `json:"questionId"`
	Given       string `json:"given"`
	Answer      string `json:"answer"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

// Submit 提交整个会话的作答：计分、刷新掌握度、发经验、检查徽章
func (s *ExerciseService) Submit(ctx context.Context, userID uint, sessionID string, answers map[uint]string) (*SessionResult, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Finished {
		return nil, util.ErrSessionFinished
	}

	score := 0
	results := make([]AnswerResult, 0, len(session.Questions))
	touchedSubtopics := map[uint]bool{}

	for _, question := range session.Questions {
		given := strings.ToUpper(strings.TrimSpace(answers[question.ID]))
		correct := given != "" && given == question.Answer
		if correct {
			score++
		}
		touchedSubtopics[question.SubtopicID] = true

		if err := s.SessionRepo.SaveAnswer(ctx, &model.ExerciseSessionAnswer{
			SessionID:  session.ID,
			QuestionID: question.ID,
			Given:      given,
			Correct:    correct,
		}); err != nil {
			return nil, err
		}

		results = append(results, AnswerResult{
			QuestionID:  question.ID,
			Given:       given,
			Answer:      question.Answer,
			Correct:     correct,
			Explanation: question.Explanation,
		})
	}

	total := len(session.Questions)
	if err := s.SessionRepo.Finish(ctx, session.ID, score, total); err != nil {
		return nil, err
	}

	// 用近期正确率刷新涉及到的子主题掌握度
	for subtopicID := range touchedSubtopics {
		accuracy, ok, err := s.SessionRepo.AccuracyBySubtopic(ctx, userID, subtopicID, performanceSessionWindow)
		if err != nil {
			zap.L().Error("refresh subtopic accuracy failed",
				zap.Uint("userId", userID), zap.Uint("subtopicId", subtopicID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if err := s.PerformanceRepo.UpdatePerformance(ctx, userID, subtopicID, accuracy); err != nil {
			zap.L().Error("update subtopic performance failed",
				zap.Uint("userId", userID), zap.Uint("subtopicId", subtopicID), zap.Error(err))
			continue
		}

		goal := defaultGoal
		if record, err := s.PerformanceRepo.FindByUserAndSubtopic(ctx, userID, subtopicID); err == nil && record.Goal != nil {
			goal = *record.Goal
		}
		if accuracy >= goal {
			s.Achievement.tryUnlock(userID, model.AchievementSubtopicAced)
		}
	}

	if score > 0 {
		s.UserRepo.AddXP(userID, score*xpPerCorrectAnswer)
	}

	unlocked, _ := s.Achievement.CheckSessionAchievements(userID)
	if a := s.checkExamSurvivor(ctx, userID); a != nil {
		unlocked = append(unlocked, *a)
	}

	session.Finished = true
	session.Score = score
	session.Total = total

	return &SessionResult{
		Score:    score,
		Total:    total,
		Unlocked: unlocked,
		Answers:  results,
		Session:  session,
	}, nil
}

// checkExamSurvivor 考试周期内（一阶段到二阶段之间）累计完成10次会话
func (s *ExerciseService) checkExamSurvivor(ctx context.Context, userID uint) *model.Achievement {
	goals, err := s.GoalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	now := time.Now()
	for _, goal := range goals {
		if goal.FirstPhaseDate == nil || now.Before(*goal.FirstPhaseDate) {
			continue
		}
		if goal.SecondPhaseDate != nil && now.After(*goal.SecondPhaseDate) {
			continue
		}
		count, err := s.SessionRepo.CountFinishedSince(userID, *goal.FirstPhaseDate)
		if err == nil && count >= 10 {
			return s.Achievement.tryUnlock(userID, model.AchievementExamSurvivor)
		}
	}
	return nil
}
