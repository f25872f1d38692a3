package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知查询服务
type NotificationService interface {
	ListMine(ctx context.Context, workerID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, workerID, notificationID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) ListMine(ctx context.Context, workerID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	items, total, err := s.repo.Notification.ListByWorker(ctx, workerID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToNotificationResponses(items), total, nil
}

// MarkRead 标记已读，只能操作属于自己的通知
func (s *notificationService) MarkRead(ctx context.Context, workerID, notificationID string) error {
	ok, err := s.repo.Notification.MarkRead(ctx, notificationID, workerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}
