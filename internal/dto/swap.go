package dto

import (
	"time"

	"workmate/backend/internal/model"
)

// ── 换班模块 DTO ──

// CreateSwapRequest 发起换班申请请求
type CreateSwapRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
	Reason  string `json:"reason"   binding:"omitempty,max=500"`
}

// RejectSwapRequest 驳回换班申请请求
type RejectSwapRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// SwapListRequest 换班申请列表查询参数
type SwapListRequest struct {
	PaginationRequest
}

// SwapRequestResponse 换班申请响应
type SwapRequestResponse struct {
	ID             string         `json:"id"`
	Shift          *ShiftResponse `json:"shift,omitempty"`
	Requester      *WorkerBrief   `json:"requester,omitempty"`
	Claimant       *WorkerBrief   `json:"claimant,omitempty"`
	Status         string         `json:"status"`
	Reason         string         `json:"reason,omitempty"`
	DecisionReason string         `json:"decision_reason,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// ClaimSwapResponse 认领结果响应
// AutoApproved 区分"已自动批准"与"待经理审批"两种结果，Message 为面向用户的说明
type ClaimSwapResponse struct {
	Request      *SwapRequestResponse `json:"request"`
	AutoApproved bool                 `json:"auto_approved"`
	Message      string               `json:"message"`
}

// ToSwapRequestResponse 模型转响应
func ToSwapRequestResponse(r *model.SwapRequest) SwapRequestResponse {
	resp := SwapRequestResponse{
		ID:             r.SwapRequestID,
		Status:         r.Status,
		Reason:         r.Reason,
		DecisionReason: r.DecisionReason,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Shift != nil {
		shift := ToShiftResponse(r.Shift)
		resp.Shift = &shift
	}
	if r.Requester != nil {
		brief := ToWorkerBrief(r.Requester)
		resp.Requester = &brief
	}
	if r.Claimant != nil {
		brief := ToWorkerBrief(r.Claimant)
		resp.Claimant = &brief
	}
	return resp
}

// ToSwapRequestResponses 批量转换
func ToSwapRequestResponses(reqs []model.SwapRequest) []SwapRequestResponse {
	out := make([]SwapRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, ToSwapRequestResponse(&reqs[i]))
	}
	return out
}
