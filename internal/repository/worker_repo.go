package repository

import (
	"context"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
	pkgerrors "workmate/backend/pkg/errors"
)

// WorkerRepository 员工数据访问接口
type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByID(ctx context.Context, id string) (*model.Worker, error)
	GetByEmail(ctx context.Context, email string) (*model.Worker, error)
	// ListEligible 返回可参与排班的在职员工
	ListEligible(ctx context.Context) ([]model.Worker, error)
	List(ctx context.Context, isActive *bool, role string, offset, limit int) ([]model.Worker, int64, error)
	Update(ctx context.Context, worker *model.Worker) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo 创建 WorkerRepository 实例
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepo) GetByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) GetByEmail(ctx context.Context, email string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) ListEligible(ctx context.Context) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) List(ctx context.Context, isActive *bool, role string, offset, limit int) ([]model.Worker, int64, error) {
	var workers []model.Worker
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Worker{})
	if isActive != nil {
		db = db.Where("is_active = ?", *isActive)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&workers).Error
	return workers, total, err
}

func (r *workerRepo) Update(ctx context.Context, worker *model.Worker) error {
	oldVersion := worker.Version
	result := r.db.WithContext(ctx).
		Model(worker).
		Where("worker_id = ? AND version = ?", worker.WorkerID, oldVersion).
		Updates(map[string]interface{}{
			"name":             worker.Name,
			"role":             worker.Role,
			"is_active":        worker.IsActive,
			"max_weekly_hours": worker.MaxWeeklyHours,
			"updated_by":       worker.UpdatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	worker.Version = oldVersion + 1
	return nil
}

func (r *workerRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&model.Worker{}).
		Where("worker_id = ?", id).
		Update("password_hash", passwordHash).Error
}
