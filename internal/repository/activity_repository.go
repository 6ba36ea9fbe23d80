package repository

import (
	"context"
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// ActivityRepository 处理学习活动的数据访问

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.StudyActivity) error {
	return r.DB.Create(activity).Error
}

func (r *ActivityRepository) Update(activity *model.StudyActivity) error {
	return r.DB.Save(activity).Error
}

func (r *ActivityRepository) Delete(id uint) error {
	return r.DB.Delete(&model.StudyActivity{}, id).Error
}

func (r *ActivityRepository) FindByIDAndUserID(id, userID uint) (*model.StudyActivity, error) {
	var activity model.StudyActivity
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) FindByUserAndRange(userID uint, from, to time.Time) ([]model.StudyActivity, error) {
	var activities []model.StudyActivity
	err := r.DB.Where("user_id = ? AND scheduled_for BETWEEN ? AND ?", userID, from, to).
		Order("scheduled_for").
		Find(&activities).Error
	return activities, err
}

// FindRecentCompleted 按完成时间倒序返回已完成活动，排除指定类型（如作业类）
func (r *ActivityRepository) FindRecentCompleted(ctx context.Context, userID uint, excludeTypes []model.ActivityType, limit int) ([]model.StudyActivity, error) {
	var activities []model.StudyActivity
	query := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ActivityCompleted)
	if len(excludeTypes) > 0 {
		query = query.Where("type NOT IN ?", excludeTypes)
	}
	err := query.Order("completed_at DESC").Limit(limit).Find(&activities).Error
	return activities, err
}

// MarkCompleted 标记活动完成并记录时长
func (r *ActivityRepository) MarkCompleted(id uint, durationMinutes int) error {
	now := time.Now()
	return r.DB.Model(&model.StudyActivity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           model.ActivityCompleted,
			"completed_at":     now,
			"duration_minutes": durationMinutes,
		}).Error
}

// SumDurationByDay 近 N 天每日学习时长（分钟），用于分析图表
func (r *ActivityRepository) SumDurationByDay(userID uint, days int) ([]model.DailyStudyTime, error) {
	var rows []model.DailyStudyTime
	since := time.Now().AddDate(0, 0, -days)
	err := r.DB.Model(&model.StudyActivity{}).
		Select("DATE(completed_at) as day, SUM(duration_minutes) as minutes").
		Where("user_id = ? AND status = ? AND completed_at >= ?", userID, model.ActivityCompleted, since).
		Group("DATE(completed_at)").
		Order("day").
		Scan(&rows).Error
	return rows, err
}
