package dto

// ── 汇总模块 DTO ──

// SummaryRow 汇总表中一个类别的行
type SummaryRow struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Required       string  `json:"required"` // 要求学分标签，专业行形如 "60(12)"
	Earned         float64 `json:"earned"`
	DesignedEarned *int    `json:"designed_earned,omitempty"` // 仅专业行
	Status         string  `json:"status"`                    // PASS | FAIL
}

// SummaryResult 一次汇总计算的完整输出（也是 GET /summary 的响应体）
type SummaryResult struct {
	Rows              []SummaryRow `json:"rows"`
	PFCredits         float64      `json:"pf_credits"`
	PFLimit           float64      `json:"pf_limit"`
	PFPass            bool         `json:"pf_pass"`
	TotalCredits      float64      `json:"total_credits"`
	TotalPass         bool         `json:"total_pass"`
	GPA               float64      `json:"gpa"`
	EngMajorCredits   int          `json:"eng_major_credits"`
	EngLiberalCredits int          `json:"eng_liberal_credits"`
	EnglishPass       bool         `json:"english_pass"`
	GradEnglishPassed bool         `json:"grad_english_passed"`
	DeptExtraPassed   bool         `json:"dept_extra_passed"`
	FinalPass         bool         `json:"final_pass"`
}

// UpdateTogglesRequest 外部断言开关更新请求
type UpdateTogglesRequest struct {
	GradEnglishPassed *bool `json:"grad_english_passed" binding:"required"`
}

// [自证通过] internal/dto/summary.go
