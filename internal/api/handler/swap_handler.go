package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/service"
	"workmate/backend/pkg/response"
)

// SwapHandler 换班市场 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// CreateSwap 发起换班申请
// POST /api/v1/swaps
func (h *SwapHandler) CreateSwap(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.swapSvc.Create(c.Request.Context(), workerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftNotFound):
			response.NotFound(c, 13002, "班次不存在")
		case errors.Is(err, service.ErrNotShiftOwner):
			response.Forbidden(c, 14001, "只能为自己持有的班次发起换班")
		case errors.Is(err, service.ErrShiftNotTransferable):
			response.Conflict(c, 14002, "班次已开始或已结束，不可换班")
		case errors.Is(err, service.ErrActiveSwapExists):
			response.Conflict(c, 14003, "该班次已存在进行中的换班申请")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ClaimSwap 认领换班申请
// POST /api/v1/swaps/:id/claim
func (h *SwapHandler) ClaimSwap(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Claim(c.Request.Context(), c.Param("id"), workerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapRequestNotFound):
			response.NotFound(c, 14004, "换班申请不存在")
		case errors.Is(err, service.ErrSwapRequestNotOpen):
			response.Conflict(c, 14005, "换班申请已被认领或已关闭")
		case errors.Is(err, service.ErrSelfClaim):
			response.BadRequest(c, 14006, "不能认领自己发起的换班申请")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ApproveSwap 批准换班申请（经理）
// POST /api/v1/swaps/:id/approve
func (h *SwapHandler) ApproveSwap(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Approve(c.Request.Context(), c.Param("id"), workerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapRequestNotFound):
			response.NotFound(c, 14004, "换班申请不存在")
		case errors.Is(err, service.ErrSwapInvalidState):
			response.Conflict(c, 14007, "换班申请当前状态不允许该操作")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// RejectSwap 驳回换班申请（经理）
// POST /api/v1/swaps/:id/reject
func (h *SwapHandler) RejectSwap(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	var req dto.RejectSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.swapSvc.Reject(c.Request.Context(), c.Param("id"), workerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapRequestNotFound):
			response.NotFound(c, 14004, "换班申请不存在")
		case errors.Is(err, service.ErrSwapInvalidState):
			response.Conflict(c, 14007, "换班申请当前状态不允许该操作")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// GetSwap 查询换班申请
// GET /api/v1/swaps/:id
func (h *SwapHandler) GetSwap(c *gin.Context) {
	result, err := h.swapSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSwapRequestNotFound) {
			response.NotFound(c, 14004, "换班申请不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListOpenSwaps 换班市场：可认领的申请
// GET /api/v1/swaps/open
func (h *SwapHandler) ListOpenSwaps(c *gin.Context) {
	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.swapSvc.ListOpen(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListPendingSwaps 待审批的申请（经理）
// GET /api/v1/swaps/pending
func (h *SwapHandler) ListPendingSwaps(c *gin.Context) {
	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.swapSvc.ListPending(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMySwaps 我发起或认领的申请
// GET /api/v1/swaps/my
func (h *SwapHandler) ListMySwaps(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.swapSvc.ListMine(c.Request.Context(), workerID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
