package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/service"
	"workmate/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListMyShifts 查询我的班次
// GET /api/v1/shifts/my
func (h *ShiftHandler) ListMyShifts(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	var req dto.ShiftRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.ListMine(c.Request.Context(), workerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			response.BadRequest(c, 13001, "时间范围无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListShifts 查询全员班次（经理）
// GET /api/v1/shifts
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	var req dto.ShiftRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.ListByRange(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			response.BadRequest(c, 13001, "时间范围无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetShift 查询单个班次
// GET /api/v1/shifts/:id
func (h *ShiftHandler) GetShift(c *gin.Context) {
	result, err := h.shiftSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			response.NotFound(c, 13002, "班次不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetTransferHistory 查询班次转移记录
// GET /api/v1/shifts/:id/transfers
func (h *ShiftHandler) GetTransferHistory(c *gin.Context) {
	result, err := h.shiftSvc.TransferHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			response.NotFound(c, 13002, "班次不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
