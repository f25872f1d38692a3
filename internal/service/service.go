package service

import (
	"go.uber.org/zap"

	"workmate/backend/config"
	"workmate/backend/internal/repository"
	"workmate/backend/pkg/jwt"
	"workmate/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth             AuthService
	Worker           WorkerService
	Shift            ShiftService
	Swap             SwapService
	Scheduler        SchedulerService
	AutomationConfig AutomationConfigService
	Notification     NotificationService
	Export           ExportService
}

// NewService 创建 Service 聚合
// rdb 可为 nil，此时登出黑名单等 Redis 能力自动降级
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notifier := NewNotifier(repo, logger)
	return &Service{
		Auth:             NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Worker:           NewWorkerService(repo, logger),
		Shift:            NewShiftService(repo, logger),
		Swap:             NewSwapService(cfg, repo, notifier, logger),
		Scheduler:        NewSchedulerService(cfg, repo, nil, logger),
		AutomationConfig: NewAutomationConfigService(repo, logger),
		Notification:     NewNotificationService(repo, logger),
		Export:           NewExportService(cfg, repo, logger),
	}
}
