package repository

import (
	"context"
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ExerciseSessionRepository struct {
	DB *gorm.DB
}

func NewExerciseSessionRepository(db *gorm.DB) *ExerciseSessionRepository {
	return &ExerciseSessionRepository{DB: db}
}

// Create 创建会话并关联题目
func (r *ExerciseSessionRepository) Create(ctx context.Context, session *model.ExerciseSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *ExerciseSessionRepository) FindByIDAndUserID(ctx context.Context, id string, userID uint) (*model.ExerciseSession, error) {
	var session model.ExerciseSession
	err := r.DB.WithContext(ctx).
		Preload("Questions").
		Preload("Answers").
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ExerciseSessionRepository) SaveAnswer(ctx context.Context, answer *model.ExerciseSessionAnswer) error {
	return r.DB.WithContext(ctx).Create(answer).Error
}

// Finish 结束会话并写入得分
func (r *ExerciseSessionRepository) Finish(ctx context.Context, id string, score, total int) error {
	now := time.Now()
	return r.DB.WithContext(ctx).Model(&model.ExerciseSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"finished":    true,
			"finished_at": now,
			"score":       score,
			"total":       total,
		}).Error
}

// CountFinishedByUser 用户已完成的会话数
func (r *ExerciseSessionRepository) CountFinishedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseSession{}).
		Where("user_id = ? AND finished = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CountFinishedSince 某时间点之后用户完成的会话数
func (r *ExerciseSessionRepository) CountFinishedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseSession{}).
		Where("user_id = ? AND finished = ? AND finished_at >= ?", userID, true, since).
		Count(&count).Error
	return count, err
}

// CountCorrectAnswers 用户累计答对题数
func (r *ExerciseSessionRepository) CountCorrectAnswers(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseSessionAnswer{}).
		Joins("JOIN exercise_sessions ON exercise_sessions.id = exercise_session_answers.session_id").
		Where("exercise_sessions.user_id = ? AND exercise_session_answers.correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

// AccuracyBySubtopic 最近 N 次会话中某子主题的正确率，[0,100]；无作答返回 (0,false)
func (r *ExerciseSessionRepository) AccuracyBySubtopic(ctx context.Context, userID, subtopicID uint, sessions int) (float64, bool, error) {
	var stats struct {
		Answered int64
		Correct  int64
	}
	// MySQL 不支持 IN 子查询带 LIMIT，改用派生表 JOIN
	recent := r.DB.Model(&model.ExerciseSession{}).
		Select("id").
		Where("user_id = ? AND finished = ?", userID, true).
		Order("finished_at DESC").
		Limit(sessions)
	err := r.DB.WithContext(ctx).Model(&model.ExerciseSessionAnswer{}).
		Select("COUNT(*) as answered, SUM(CASE WHEN correct THEN 1 ELSE 0 END) as correct").
		Joins("JOIN exercise_questions ON exercise_questions.id = exercise_session_answers.question_id").
		Joins("JOIN (?) recent ON recent.id = exercise_session_answers.session_id", recent).
		Where("exercise_questions.subtopic_id = ?", subtopicID).
		Scan(&stats).Error
	if err != nil {
		return 0, false, err
	}
	if stats.Answered == 0 {
		return 0, false, nil
	}
	return float64(stats.Correct) / float64(stats.Answered) * 100, true, nil
}

// AccuracyGroupedBySubtopic 按子主题聚合正确率，用于分析面板
func (r *ExerciseSessionRepository) AccuracyGroupedBySubtopic(userID uint) ([]model.SubtopicAccuracy, error) {
	var rows []model.SubtopicAccuracy
	err := r.DB.Model(&model.ExerciseSessionAnswer{}).
		Select("exercise_questions.subtopic_id as subtopic_id, subtopics.name as subtopic, COUNT(*) as answered, SUM(CASE WHEN exercise_session_answers.correct THEN 1 ELSE 0 END) as correct, AVG(CASE WHEN exercise_session_answers.correct THEN 100.0 ELSE 0 END) as accuracy").
		Joins("JOIN exercise_sessions ON exercise_sessions.id = exercise_session_answers.session_id").
		Joins("JOIN exercise_questions ON exercise_questions.id = exercise_session_answers.question_id").
		Joins("JOIN subtopics ON subtopics.id = exercise_questions.subtopic_id").
		Where("exercise_sessions.user_id = ?", userID).
		Group("exercise_questions.subtopic_id, subtopics.name").
		Order("accuracy").
		Scan(&rows).Error
	return rows, err
}
