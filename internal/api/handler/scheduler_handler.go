package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/service"
	"workmate/backend/pkg/response"
)

// SchedulerHandler 自动排班 HTTP 处理器
type SchedulerHandler struct {
	schedulerSvc service.SchedulerService
	configSvc    service.AutomationConfigService
}

// NewSchedulerHandler 创建 SchedulerHandler
func NewSchedulerHandler(schedulerSvc service.SchedulerService, configSvc service.AutomationConfigService) *SchedulerHandler {
	return &SchedulerHandler{schedulerSvc: schedulerSvc, configSvc: configSvc}
}

// GenerateWeek 为下周生成排班（经理）
// POST /api/v1/scheduler/generate
func (h *SchedulerHandler) GenerateWeek(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	result, err := h.schedulerSvc.GenerateWeek(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, service.ErrMalformedOperatingHours) {
			response.ErrorWithDetails(c, 422, 15001, "营业时间配置格式错误", err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetConfig 查询自动排班配置（经理）
// GET /api/v1/scheduler/config
func (h *SchedulerHandler) GetConfig(c *gin.Context) {
	result, err := h.configSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateConfig 更新自动排班配置（经理）
// PUT /api/v1/scheduler/config
func (h *SchedulerHandler) UpdateConfig(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	var req dto.UpdateAutomationConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.configSvc.Update(c.Request.Context(), workerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMalformedOperatingHours) {
			response.BadRequest(c, 15001, "营业时间配置格式错误")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
