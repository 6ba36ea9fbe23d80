package repository

import (
	"context"
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PerformanceRepository 处理子主题掌握度的数据访问

type PerformanceRepository struct {
	DB *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{DB: db}
}

// FindByUserID 获取用户全部子主题掌握度记录，空列表不是错误
func (r *PerformanceRepository) FindByUserID(ctx context.Context, userID uint) ([]model.SubtopicPerformance, error) {
	var records []model.SubtopicPerformance
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *PerformanceRepository) FindByUserAndSubtopic(ctx context.Context, userID, subtopicID uint) (*model.SubtopicPerformance, error) {
	var record model.SubtopicPerformance
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND subtopic_id = ?", userID, subtopicID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert 按 (user, subtopic) 去重写入
func (r *PerformanceRepository) Upsert(ctx context.Context, record *model.SubtopicPerformance) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subtopic_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"performance", "goal", "weight", "priority_multiplier", "updated_at"}),
	}).Create(record).Error
}

// UpdatePerformance 只刷新掌握百分比，练习会话结束后调用
func (r *PerformanceRepository) UpdatePerformance(ctx context.Context, userID, subtopicID uint, performance float64) error {
	return r.DB.WithContext(ctx).Model(&model.SubtopicPerformance{}).
		Where("user_id = ? AND subtopic_id = ?", userID, subtopicID).
		Update("performance", performance).Error
}
