package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务执行器
// fn 内通过传入的 txRepo 访问数据即可获得同一事务语义；fn 返回错误时整体回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(txRepo *Repository) error) error
}

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Worker           WorkerRepository
	Shift            ShiftRepository
	SwapRequest      SwapRequestRepository
	TransferLog      TransferLogRepository
	AutomationConfig AutomationConfigRepository
	Notification     NotificationRepository

	Tx TxManager
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Worker:           NewWorkerRepo(db),
		Shift:            NewShiftRepo(db),
		SwapRequest:      NewSwapRequestRepo(db),
		TransferLog:      NewTransferLogRepo(db),
		AutomationConfig: NewAutomationConfigRepo(db),
		Notification:     NewNotificationRepo(db),
		Tx:               &gormTxManager{db: db},
	}
}

type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
