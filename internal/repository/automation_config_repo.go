package repository

import (
	"context"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
)

// AutomationConfigRepository 自动排班配置数据访问接口
type AutomationConfigRepository interface {
	Get(ctx context.Context) (*model.AutomationConfig, error)
	Update(ctx context.Context, cfg *model.AutomationConfig) error
}

type automationConfigRepo struct {
	db *gorm.DB
}

// NewAutomationConfigRepo 创建 AutomationConfigRepository 实例
func NewAutomationConfigRepo(db *gorm.DB) AutomationConfigRepository {
	return &automationConfigRepo{db: db}
}

func (r *automationConfigRepo) Get(ctx context.Context) (*model.AutomationConfig, error) {
	var cfg model.AutomationConfig
	err := r.db.WithContext(ctx).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *automationConfigRepo) Update(ctx context.Context, cfg *model.AutomationConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
