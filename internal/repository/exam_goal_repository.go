package repository

import (
	"context"
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
)

// ExamGoalRepository 处理考试目标的数据访问

type ExamGoalRepository struct {
	DB *gorm.DB
}

func NewExamGoalRepository(db *gorm.DB) *ExamGoalRepository {
	return &ExamGoalRepository{DB: db}
}

func (r *ExamGoalRepository) Create(goal *model.ExamGoal) error {
	return r.DB.Create(goal).Error
}

func (r *ExamGoalRepository) Update(goal *model.ExamGoal) error {
	return r.DB.Save(goal).Error
}

func (r *ExamGoalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ExamGoal{}, id).Error
}

func (r *ExamGoalRepository) FindByIDAndUserID(id, userID uint) (*model.ExamGoal, error) {
	var goal model.ExamGoal
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByUserID 获取用户登记的全部考试目标，推荐引擎从中推导阶段日期
func (r *ExamGoalRepository) FindByUserID(ctx context.Context, userID uint) ([]model.ExamGoal, error) {
	var goals []model.ExamGoal
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("second_phase_date").
		Find(&goals).Error
	return goals, err
}
