package dto

import (
	"time"

	"workmate/backend/internal/model"
)

// ── 班次模块 DTO ──

// ShiftRangeRequest 按时间范围查询班次
type ShiftRangeRequest struct {
	From string `form:"from" binding:"required"` // RFC3339
	To   string `form:"to"   binding:"required"` // RFC3339
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID        string       `json:"id"`
	Worker    *WorkerBrief `json:"worker,omitempty"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Type      string       `json:"type"`
	Status    string       `json:"status"`
	Note      string       `json:"note,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

// ToShiftResponse 模型转响应
func ToShiftResponse(s *model.Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:        s.ShiftID,
		StartTime: s.StartTime.Format(time.RFC3339),
		EndTime:   s.EndTime.Format(time.RFC3339),
		Type:      s.Type,
		Status:    s.Status,
		Note:      s.Note,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Worker != nil {
		brief := ToWorkerBrief(s.Worker)
		resp.Worker = &brief
	}
	return resp
}

// ToShiftResponses 批量转换
func ToShiftResponses(shifts []model.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, ToShiftResponse(&shifts[i]))
	}
	return out
}

// TransferLogResponse 班次转移日志响应
type TransferLogResponse struct {
	ID            string `json:"id"`
	ShiftID       string `json:"shift_id"`
	SwapRequestID string `json:"swap_request_id"`
	FromWorkerID  string `json:"from_worker_id"`
	ToWorkerID    string `json:"to_worker_id"`
	TransferType  string `json:"transfer_type"`
	OperatorID    string `json:"operator_id"`
	CreatedAt     string `json:"created_at"`
}

// ToTransferLogResponse 模型转响应
func ToTransferLogResponse(l *model.ShiftTransferLog) TransferLogResponse {
	return TransferLogResponse{
		ID:            l.TransferLogID,
		ShiftID:       l.ShiftID,
		SwapRequestID: l.SwapRequestID,
		FromWorkerID:  l.FromWorkerID,
		ToWorkerID:    l.ToWorkerID,
		TransferType:  l.TransferType,
		OperatorID:    l.OperatorID,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}
