package dto

import (
	"time"

	"workmate/backend/internal/model"
)

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
	PaginationRequest
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	IsRead        bool    `json:"is_read"`
	SwapRequestID *string `json:"swap_request_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ToNotificationResponse 模型转响应
func ToNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.NotificationID,
		Type:          n.Type,
		Title:         n.Title,
		Content:       n.Content,
		IsRead:        n.IsRead,
		SwapRequestID: n.SwapRequestID,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}

// ToNotificationResponses 批量转换
func ToNotificationResponses(items []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for i := range items {
		out = append(out, ToNotificationResponse(&items[i]))
	}
	return out
}
