package repository

import (
	"context"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
)

// SwapRequestRepository 换班申请数据访问接口
//
// 状态迁移一律用条件更新表达（WHERE 带上期望的当前状态），
// 命中与否由返回的 bool 区分：并发竞争的输家会看到 false，
// 与"申请已不处于该状态"在语义上等价
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	// GetActiveByShift 查询班次当前的活跃申请（open / pending_approval）
	GetActiveByShift(ctx context.Context, shiftID string) (*model.SwapRequest, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error)
	// ListByWorker 按发起人或认领人查询，按更新时间倒序
	ListByWorker(ctx context.Context, workerID string, offset, limit int) ([]model.SwapRequest, int64, error)
	// ClaimIfOpen 仅当申请仍为 open 时写入认领人并迁移到 newStatus
	ClaimIfOpen(ctx context.Context, id, claimantID, newStatus, decisionReason string) (bool, error)
	// ApproveIfPending 仅当申请为 pending_approval 时迁移到 approved
	ApproveIfPending(ctx context.Context, id, approverID string) (bool, error)
	// RejectIfActive 仅当申请为 open / pending_approval 时迁移到 rejected
	RejectIfActive(ctx context.Context, id, approverID, reason string) (bool, error)
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Requester").
		Preload("Claimant").
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) GetActiveByShift(ctx context.Context, shiftID string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND status IN ?", shiftID,
			[]string{model.SwapStatusOpen, model.SwapStatusPendingApproval}).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var reqs []model.SwapRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("status = ?", status)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Shift").Preload("Requester").Preload("Claimant").
		Offset(offset).Limit(limit).
		Order("updated_at DESC").
		Find(&reqs).Error
	return reqs, total, err
}

func (r *swapRequestRepo) ListByWorker(ctx context.Context, workerID string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var reqs []model.SwapRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("requester_id = ? OR claimant_id = ?", workerID, workerID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Shift").Preload("Requester").Preload("Claimant").
		Offset(offset).Limit(limit).
		Order("updated_at DESC").
		Find(&reqs).Error
	return reqs, total, err
}

func (r *swapRequestRepo) ClaimIfOpen(ctx context.Context, id, claimantID, newStatus, decisionReason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ?", id, model.SwapStatusOpen).
		Updates(map[string]interface{}{
			"claimant_id":     claimantID,
			"status":          newStatus,
			"decision_reason": decisionReason,
			"updated_by":      claimantID,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *swapRequestRepo) ApproveIfPending(ctx context.Context, id, approverID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ? AND claimant_id IS NOT NULL",
			id, model.SwapStatusPendingApproval).
		Updates(map[string]interface{}{
			"status":      model.SwapStatusApproved,
			"approved_by": approverID,
			"updated_by":  approverID,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *swapRequestRepo) RejectIfActive(ctx context.Context, id, approverID, reason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status IN ?", id,
			[]string{model.SwapStatusOpen, model.SwapStatusPendingApproval}).
		Updates(map[string]interface{}{
			"status":          model.SwapStatusRejected,
			"decision_reason": reason,
			"approved_by":     approverID,
			"updated_by":      approverID,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
