package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
	pkgerrors "workmate/backend/pkg/errors"
)

// ShiftRepository 班次数据访问接口
// 班次只增不删：批量写入来自自动排班，所有权变更只经 ReassignOwner
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	BatchCreate(ctx context.Context, shifts []model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListByWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.Shift, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.Shift, error)
	// ReassignOwner 条件更新转移所有权：仅当当前所有者仍为 fromWorkerID 时生效，
	// 并在 note 末尾追加一行转移备注。未命中返回 ErrOptimisticLock
	ReassignOwner(ctx context.Context, shiftID, fromWorkerID, toWorkerID, noteLine string, operatorID string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) ListByWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND start_time >= ? AND start_time < ?", workerID, from, to).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ReassignOwner(ctx context.Context, shiftID, fromWorkerID, toWorkerID, noteLine string, operatorID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ? AND worker_id = ?", shiftID, fromWorkerID).
		Updates(map[string]interface{}{
			"worker_id":  toWorkerID,
			"note":       gorm.Expr("note || ?", noteLine),
			"updated_by": operatorID,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}
