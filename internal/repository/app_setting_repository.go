package repository

import (
	"context"
	"errors"
	"strconv"
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppSettingRepository 通用键值配置访问，键未设置时返回 nil 而非错误，
// 默认值由调用方负责

type AppSettingRepository struct {
	DB *gorm.DB
}

func NewAppSettingRepository(db *gorm.DB) *AppSettingRepository {
	return &AppSettingRepository{DB: db}
}

func (r *AppSettingRepository) Get(ctx context.Context, key string) (*string, error) {
	var setting model.AppSetting
	err := r.DB.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting.Value, nil
}

// GetInt 读取整数配置，未设置或无法解析时返回 nil
func (r *AppSettingRepository) GetInt(ctx context.Context, key string) (*int, error) {
	value, err := r.Get(ctx, key)
	if err != nil || value == nil {
		return nil, err
	}
	n, err := strconv.Atoi(*value)
	if err != nil {
		return nil, nil
	}
	return &n, nil
}

func (r *AppSettingRepository) Set(ctx context.Context, key, value string) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.AppSetting{Key: key, Value: value}).Error
}
