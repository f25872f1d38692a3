package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"workmate/backend/internal/service"
	"workmate/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWeek 导出周排班表 Excel（经理）
// GET /api/v1/export/week?date=2026-09-07
func (h *ExportHandler) ExportWeek(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(c, 10001, "date 格式应为 YYYY-MM-DD")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekExcel(c.Request.Context(), date)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportMyCalendar 导出个人班表 ICS
// GET /api/v1/export/calendar
func (h *ExportHandler) ExportMyCalendar(c *gin.Context) {
	workerID, ok := MustGetWorkerID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWorkerICS(c.Request.Context(), workerID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoShifts):
		response.NotFound(c, 17001, "导出范围内无班次")
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 12001, "员工不存在")
	default:
		response.InternalError(c)
	}
}

// writeAttachment 设置下载响应头并写入内容
func writeAttachment(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}
