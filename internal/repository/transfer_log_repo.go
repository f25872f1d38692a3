package repository

import (
	"context"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
)

// TransferLogRepository 班次转移日志数据访问接口（纯追加）
type TransferLogRepository interface {
	Create(ctx context.Context, log *model.ShiftTransferLog) error
	ListByShift(ctx context.Context, shiftID string) ([]model.ShiftTransferLog, error)
}

type transferLogRepo struct {
	db *gorm.DB
}

// NewTransferLogRepo 创建 TransferLogRepository 实例
func NewTransferLogRepo(db *gorm.DB) TransferLogRepository {
	return &transferLogRepo{db: db}
}

func (r *transferLogRepo) Create(ctx context.Context, log *model.ShiftTransferLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *transferLogRepo) ListByShift(ctx context.Context, shiftID string) ([]model.ShiftTransferLog, error) {
	var logs []model.ShiftTransferLog
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
