package repository

import (
	"context"
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
)

// ExerciseQuestionRepository 题库数据访问

type ExerciseQuestionRepository struct {
	DB *gorm.DB
}

func NewExerciseQuestionRepository(db *gorm.DB) *ExerciseQuestionRepository {
	return &ExerciseQuestionRepository{DB: db}
}

func (r *ExerciseQuestionRepository) Create(question *model.ExerciseQuestion) error {
	return r.DB.Create(question).Error
}

func (r *ExerciseQuestionRepository) UpdateQuestion(question *model.ExerciseQuestion) error {
	return r.DB.Model(question).Updates(question).Error
}

func (r *ExerciseQuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ExerciseQuestion{}, id).Error
}

func (r *ExerciseQuestionRepository) FindByID(id uint) (*model.ExerciseQuestion, error) {
	var question model.ExerciseQuestion
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindRandomBySubtopic 从子主题随机抽题，difficulty 为空时不限难度
func (r *ExerciseQuestionRepository) FindRandomBySubtopic(ctx context.Context, subtopicID uint, difficulty *int, limit int) ([]model.ExerciseQuestion, error) {
	query := r.DB.WithContext(ctx).
		Where("subtopic_id = ? AND enabled = ?", subtopicID, true)
	if difficulty != nil {
		query = query.Where("difficulty = ?", *difficulty)
	}
	var questions []model.ExerciseQuestion
	err := query.Order("RAND()").Limit(limit).Find(&questions).Error
	return questions, err
}

// FindRandomByTopic 从主题下所有子主题随机抽题
func (r *ExerciseQuestionRepository) FindRandomByTopic(ctx context.Context, topicID uint, difficulty *int, limit int) ([]model.ExerciseQuestion, error) {
	query := r.DB.WithContext(ctx).
		Joins("JOIN subtopics ON subtopics.id = exercise_questions.subtopic_id").
		Where("subtopics.topic_id = ? AND exercise_questions.enabled = ?", topicID, true)
	if difficulty != nil {
		query = query.Where("exercise_questions.difficulty = ?", *difficulty)
	}
	var questions []model.ExerciseQuestion
	err := query.Order("RAND()").Limit(limit).Find(&questions).Error
	return questions, err
}

// FindRandomBySubject 从学科下所有子主题随机抽题
func (r *ExerciseQuestionRepository) FindRandomBySubject(ctx context.Context, subjectID uint, difficulty *int, limit int) ([]model.ExerciseQuestion, error) {
	query := r.DB.WithContext(ctx).
		Joins("JOIN subtopics ON subtopics.id = exercise_questions.subtopic_id").
		Joins("JOIN topics ON topics.id = subtopics.topic_id").
		Where("topics.subject_id = ? AND exercise_questions.enabled = ?", subjectID, true)
	if difficulty != nil {
		query = query.Where("exercise_questions.difficulty = ?", *difficulty)
	}
	var questions []model.ExerciseQuestion
	err := query.Order("RAND()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *ExerciseQuestionRepository) FindBySubtopicWithPagination(subtopicID uint, page, limit int) ([]model.ExerciseQuestion, int, error) {
	var questions []model.ExerciseQuestion
	var total int64

	err := r.DB.Model(&model.ExerciseQuestion{}).Where("subtopic_id = ?", subtopicID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err = r.DB.Where("subtopic_id = ?", subtopicID).Offset(offset).Limit(limit).Find(&questions).Error

	return questions, int(total), err
}
