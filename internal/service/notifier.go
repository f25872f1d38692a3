package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
)

// Notifier 换班流程中的通知投递
// 通知失败只记日志，绝不阻断业务流程
type Notifier interface {
	SwapCreated(ctx context.Context, req *model.SwapRequest)
	SwapAutoApproved(ctx context.Context, req *model.SwapRequest)
	SwapPending(ctx context.Context, req *model.SwapRequest, managerIDs []string)
	SwapApproved(ctx context.Context, req *model.SwapRequest)
	SwapRejected(ctx context.Context, req *model.SwapRequest)
}

type dbNotifier struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewNotifier(repo *repository.Repository, logger *zap.Logger) Notifier {
	return &dbNotifier{repo: repo, logger: logger}
}

func (n *dbNotifier) deliver(ctx context.Context, workerID, notifyType, title, content string, swapRequestID string) {
	notification := &model.Notification{
		WorkerID:      workerID,
		Type:          notifyType,
		Title:         title,
		Content:       content,
		SwapRequestID: &swapRequestID,
	}
	if err := n.repo.Notification.Create(ctx, notification); err != nil {
		n.logger.Warn("通知写入失败",
			zap.String("worker_id", workerID),
			zap.String("type", notifyType),
			zap.Error(err))
	}
}

func (n *dbNotifier) SwapCreated(ctx context.Context, req *model.SwapRequest) {
	n.deliver(ctx, req.RequesterID, model.NotifySwapCreated,
		"换班申请已发布",
		"你的换班申请已进入换班市场，等待同事认领。",
		req.SwapRequestID)
}

func (n *dbNotifier) SwapAutoApproved(ctx context.Context, req *model.SwapRequest) {
	n.deliver(ctx, req.RequesterID, model.NotifySwapAutoApproved,
		"换班已自动完成",
		"你的班次已转移给认领同事，换班申请自动批准。",
		req.SwapRequestID)
	if req.ClaimantID != nil {
		n.deliver(ctx, *req.ClaimantID, model.NotifySwapAutoApproved,
			"认领成功",
			"你认领的班次已转移到你名下。",
			req.SwapRequestID)
	}
}

func (n *dbNotifier) SwapPending(ctx context.Context, req *model.SwapRequest, managerIDs []string) {
	content := fmt.Sprintf("换班申请待审批：%s", req.DecisionReason)
	for _, mid := range managerIDs {
		n.deliver(ctx, mid, model.NotifySwapPending, "换班申请待审批", content, req.SwapRequestID)
	}
	if req.ClaimantID != nil {
		n.deliver(ctx, *req.ClaimantID, model.NotifySwapPending,
			"认领待审批",
			"你的认领未通过自动校验，已提交经理审批。",
			req.SwapRequestID)
	}
}

func (n *dbNotifier) SwapApproved(ctx context.Context, req *model.SwapRequest) {
	n.deliver(ctx, req.RequesterID, model.NotifySwapApproved,
		"换班已批准",
		"经理已批准换班，班次已转移给认领同事。",
		req.SwapRequestID)
	if req.ClaimantID != nil {
		n.deliver(ctx, *req.ClaimantID, model.NotifySwapApproved,
			"认领已批准",
			"经理已批准，你认领的班次已转移到你名下。",
			req.SwapRequestID)
	}
}

func (n *dbNotifier) SwapRejected(ctx context.Context, req *model.SwapRequest) {
	content := "换班申请已被驳回。"
	if req.DecisionReason != "" {
		content = fmt.Sprintf("换班申请已被驳回：%s", req.DecisionReason)
	}
	n.deliver(ctx, req.RequesterID, model.NotifySwapRejected, "换班已驳回", content, req.SwapRequestID)
	if req.ClaimantID != nil {
		n.deliver(ctx, *req.ClaimantID, model.NotifySwapRejected, "认领已驳回", content, req.SwapRequestID)
	}
}
