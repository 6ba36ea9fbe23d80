package repository

import (
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// FindAllWithTree 返回完整的学科>主题>子主题层级
func (r *SubjectRepository) FindAllWithTree() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("enabled = ?", true).
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topics.order")
		}).
		Preload("Topics.Subtopics", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtopics.order")
		}).
		Order("subjects.order").
		Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) FindSubtopicByID(id uint) (*model.Subtopic, error) {
	var subtopic model.Subtopic
	err := r.DB.First(&subtopic, id).Error
	if err != nil {
		return nil, err
	}
	return &subtopic, nil
}

func (r *SubjectRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *SubjectRepository) CreateSubtopic(subtopic *model.Subtopic) error {
	return r.DB.Create(subtopic).Error
}

func (r *SubjectRepository) DeleteSubject(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}
