package handler

import "workmate/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Worker       *WorkerHandler
	Shift        *ShiftHandler
	Swap         *SwapHandler
	Scheduler    *SchedulerHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Worker:       NewWorkerHandler(svc.Worker),
		Shift:        NewShiftHandler(svc.Shift),
		Swap:         NewSwapHandler(svc.Swap),
		Scheduler:    NewSchedulerHandler(svc.Scheduler, svc.AutomationConfig),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
