package dto

import "workmate/backend/internal/model"

// ── 员工模块 DTO ──

// ToWorkerResponse 模型转响应
func ToWorkerResponse(w *model.Worker) WorkerResponse {
	return WorkerResponse{
		ID:             w.WorkerID,
		Name:           w.Name,
		Email:          w.Email,
		Role:           w.Role,
		IsActive:       w.IsActive,
		MaxWeeklyHours: w.MaxWeeklyHours,
	}
}

// ToWorkerBrief 模型转简要信息
func ToWorkerBrief(w *model.Worker) WorkerBrief {
	return WorkerBrief{ID: w.WorkerID, Name: w.Name}
}

// CreateWorkerRequest 创建员工请求（经理操作）
type CreateWorkerRequest struct {
	Name           string `json:"name"             binding:"required,min=2,max=100"`
	Email          string `json:"email"            binding:"required,email"`
	Password       string `json:"password"         binding:"required,min=8,max=20"`
	Role           string `json:"role"             binding:"omitempty,oneof=worker manager"`
	MaxWeeklyHours int    `json:"max_weekly_hours" binding:"omitempty,min=1,max=168"`
}

// WorkerListRequest 员工列表查询参数
type WorkerListRequest struct {
	IsActive *bool  `form:"is_active"`
	Role     string `form:"role" binding:"omitempty,oneof=worker manager"`
	PaginationRequest
}

// UpdateWorkerRequest 更新员工请求（经理操作：在职状态、工时上限、角色）
type UpdateWorkerRequest struct {
	Name           *string `json:"name"             binding:"omitempty,min=2,max=100"`
	IsActive       *bool   `json:"is_active"`
	MaxWeeklyHours *int    `json:"max_weekly_hours" binding:"omitempty,min=1,max=168"`
	Role           *string `json:"role"             binding:"omitempty,oneof=worker manager"`
}
