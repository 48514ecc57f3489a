package service

import (
	"testing"

	"github.com/KimGyeongLock/GRADU-sub000/config"
	"github.com/KimGyeongLock/GRADU-sub000/internal/credit"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// ── 测试辅助 ──

// testPolicy 现行学则默认政策（与 config 默认值一致）
func testPolicy() *model.SummaryPolicy {
	return NewPolicyService(&config.PolicyConfig{
		PFRatioMax:            0.30,
		PFMinTotalForLimit:    130,
		TotalCreditsMin:       130,
		GPAMin:                0.0,
		EngMajorMinA:          21,
		EngLiberalMinA:        9,
		EngMajorMinB:          24,
		EngLiberalMinB:        6,
		MajorDesignedRequired: 12,
	}).ActivePolicy()
}

func mkCourse(name string, cat model.Category, creditVal float64, grade string) model.Course {
	return model.Course{
		StudentID:    "stu-1",
		Name:         name,
		Category:     cat,
		CreditUnits:  credit.ToUnits(creditVal),
		Grade:        grade,
		AcademicYear: 2024,
		Term:         model.TermFirst,
	}
}

func mkEnglishCourse(name string, cat model.Category, creditVal float64, grade string) model.Course {
	c := mkCourse(name, cat, creditVal, grade)
	c.IsEnglish = true
	return c
}

func mkMajorCourse(name string, creditVal float64, grade string, designed int) model.Course {
	c := mkCourse(name, model.CategoryMajor, creditVal, grade)
	c.DesignedCredit = designed
	return c
}

// fullPassCourses 造一套恰好满足全部毕业要求的课程
func fullPassCourses() []model.Course {
	var courses []model.Course

	// 信仰与世界观 9（全英语授课 → 教养英语 9）
	for i := 0; i < 3; i++ {
		courses = append(courses, mkEnglishCourse("신앙교양"+string(rune('A'+i)), model.CategoryFaithWorldview, 3, "A0"))
	}
	// 人性与领导力 6
	for i := 0; i < 2; i++ {
		courses = append(courses, mkCourse("리더십"+string(rune('A'+i)), model.CategoryPersonalityLeadership, 3, "A0"))
	}
	// 实务英语 9
	for i := 0; i < 3; i++ {
		courses = append(courses, mkEnglishCourse("영어"+string(rune('A'+i)), model.CategoryPracticalEnglish, 3, "A0"))
	}
	// 专门教养 5
	courses = append(courses, mkCourse("전문교양", model.CategoryGeneralEdu, 5, "A0"))
	// BSM 18
	for i := 0; i < 6; i++ {
		courses = append(courses, mkCourse("수학"+string(rune('A'+i)), model.CategoryBSM, 3, "A0"))
	}
	// ICT 概论 2
	courses = append(courses, mkCourse("ICT개론", model.CategoryICTIntro, 2, "A0"))
	// 自由选修（教养）9
	for i := 0; i < 3; i++ {
		courses = append(courses, mkCourse("자선교양"+string(rune('A'+i)), model.CategoryFreeElectiveBasic, 3, "A0"))
	}
	// 自由选修（专业）12 — 补足总学分到 130
	for i := 0; i < 4; i++ {
		courses = append(courses, mkCourse("자선전공"+string(rune('A'+i)), model.CategoryFreeElectiveMajor, 3, "A0"))
	}

	// 专业 60：前 7 门英语授课（专业英语 21），前 4 门各带 3 设计学分（共 12），
	// 其中两门是毕业设计（学科附加要求）
	for i := 0; i < 20; i++ {
		name := "전공" + string(rune('A'+i))
		designed := 0
		if i < 4 {
			designed = 3
		}
		c := mkMajorCourse(name, 3, "A0", designed)
		if i < 7 {
			c.IsEnglish = true
		}
		courses = append(courses, c)
	}
	courses[len(courses)-2].Name = "캡스톤디자인1"
	courses[len(courses)-1].Name = "캡스톤디자인 2"

	return courses
}

// ── 完整通过场景 ──

func TestComputeSummary_FullPass(t *testing.T) {
	result := ComputeSummary(fullPassCourses(), testPolicy(), true)

	if result.TotalCredits != 130 {
		t.Errorf("期望总学分 130，实际=%v", result.TotalCredits)
	}
	if !result.TotalPass {
		t.Error("总学分应达标")
	}
	if result.GPA != 4.0 {
		t.Errorf("全 A0 期望 GPA=4.0，实际=%v", result.GPA)
	}
	if result.EngMajorCredits != 21 || result.EngLiberalCredits != 9 {
		t.Errorf("期望英语授课 专业21/教养9，实际=%d/%d", result.EngMajorCredits, result.EngLiberalCredits)
	}
	if !result.EnglishPass {
		t.Error("英语授课要求应满足（21/9 方案）")
	}
	if !result.PFPass {
		t.Error("无 P/F 课程时 P/F 限额应满足")
	}
	if !result.DeptExtraPassed {
		t.Error("两门毕业设计均已通过，学科附加要求应满足")
	}
	for _, row := range result.Rows {
		if row.Status != "PASS" {
			t.Errorf("类别行 %s 应 PASS，实际=%s（earned=%v required=%s）", row.Key, row.Status, row.Earned, row.Required)
		}
	}
	if !result.FinalPass {
		t.Error("全部要求满足时最终判定应通过")
	}
}

func TestComputeSummary_FinalPassNeedsGradEnglish(t *testing.T) {
	result := ComputeSummary(fullPassCourses(), testPolicy(), false)

	if result.GradEnglishPassed {
		t.Error("开关透传错误")
	}
	if result.FinalPass {
		t.Error("毕业英语未通过时最终判定不应通过")
	}
}

func TestComputeSummary_MajorRowNeedsDesignedCredits(t *testing.T) {
	courses := fullPassCourses()
	// 抹掉全部设计学分
	for i := range courses {
		courses[i].DesignedCredit = 0
	}

	result := ComputeSummary(courses, testPolicy(), true)

	majorIdx := -1
	for i, row := range result.Rows {
		if row.Key == string(model.CategoryMajor) {
			majorIdx = i
		}
	}
	if majorIdx < 0 {
		t.Fatal("缺少专业行")
	}
	majorRow := result.Rows[majorIdx]
	if majorRow.Required != "60(12)" {
		t.Errorf("专业行要求标签期望 60(12)，实际=%s", majorRow.Required)
	}
	if majorRow.DesignedEarned == nil || *majorRow.DesignedEarned != 0 {
		t.Errorf("设计学分期望 0，实际=%v", majorRow.DesignedEarned)
	}
	if majorRow.Status != "FAIL" {
		t.Error("设计学分不足时专业行应 FAIL")
	}
	if result.FinalPass {
		t.Error("专业行 FAIL 时最终判定不应通过")
	}
}

// ── 排除规则 ──

func TestComputeSummary_ExcludesFailedAndUngraded(t *testing.T) {
	courses := []model.Course{
		mkCourse("미적분학", model.CategoryBSM, 3, "F"),
		mkCourse("물리학", model.CategoryBSM, 3, ""), // 未出分
		mkCourse("화학", model.CategoryBSM, 3, "B+"),
	}

	result := ComputeSummary(courses, testPolicy(), false)

	if result.TotalCredits != 3 {
		t.Errorf("F 与未出分课程不应计入总学分，期望 3，实际=%v", result.TotalCredits)
	}
	if result.GPA != 3.5 {
		t.Errorf("GPA 只看 B+ 一门，期望 3.5，实际=%v", result.GPA)
	}
	for _, row := range result.Rows {
		if row.Key == string(model.CategoryBSM) && row.Earned != 3 {
			t.Errorf("BSM 行期望 3，实际=%v", row.Earned)
		}
	}
}

// ── 只计一次规则 ──

func TestComputeSummary_CountOnceAcrossCategories(t *testing.T) {
	courses := []model.Course{
		mkCourse("기독교세계관", model.CategoryFaithWorldview, 3, "A0"),
		mkCourse("기독교세계관", model.CategoryGeneralEdu, 3, "A0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)

	// 聚合量只计一次
	if result.TotalCredits != 3 {
		t.Errorf("跨类别重复登记只计一次，期望总学分 3，实际=%v", result.TotalCredits)
	}
	// 类别行不去重：两行各计各的
	for _, row := range result.Rows {
		switch row.Key {
		case string(model.CategoryFaithWorldview), string(model.CategoryGeneralEdu):
			if row.Earned != 3 {
				t.Errorf("类别行 %s 期望 3，实际=%v", row.Key, row.Earned)
			}
		}
	}
}

func TestComputeSummary_CountOnceMatchIgnoresSpacing(t *testing.T) {
	courses := []model.Course{
		mkCourse("기독교 세계관", model.CategoryFaithWorldview, 3, "A0"),
		mkCourse("기독교세계관", model.CategoryGeneralEdu, 3, "A0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)
	if result.TotalCredits != 3 {
		t.Errorf("名称匹配应忽略空白，期望总学分 3，实际=%v", result.TotalCredits)
	}
}

func TestComputeSummary_CountOnceNotAppliedOutsideRuleCategories(t *testing.T) {
	// 同名课程落在规则类别之外时不受只计一次约束
	courses := []model.Course{
		mkCourse("기독교세계관", model.CategoryBSM, 3, "A0"),
		mkCourse("기독교세계관", model.CategoryBSM, 3, "A0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)
	if result.TotalCredits != 6 {
		t.Errorf("规则类别之外不去重，期望 6，实际=%v", result.TotalCredits)
	}
}

// ── P/F 限额 ──

func TestComputeSummary_PFLimitUsesMinBase(t *testing.T) {
	// 总学分远低于 130 时，限额基数取政策最低值：floor(130×0.30)=39
	courses := []model.Course{
		mkCourse("채플", model.CategoryFaithWorldview, 0.5, "P"),
		mkCourse("수학", model.CategoryBSM, 3, "A0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)

	if result.PFCredits != 0.5 {
		t.Errorf("P/F 学分期望 0.5，实际=%v", result.PFCredits)
	}
	if result.PFLimit != 39 {
		t.Errorf("P/F 限额期望 39，实际=%v", result.PFLimit)
	}
	if !result.PFPass {
		t.Error("P/F 学分低于限额应通过")
	}
}

func TestComputeSummary_PFCoursesExcludedFromGPA(t *testing.T) {
	courses := []model.Course{
		mkCourse("채플", model.CategoryFaithWorldview, 1, "P"),
		mkCourse("수학", model.CategoryBSM, 3, "C0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)
	if result.GPA != 2.0 {
		t.Errorf("P 成绩不进 GPA，期望 2.0，实际=%v", result.GPA)
	}
	if result.TotalCredits != 4 {
		t.Errorf("P 成绩计入总学分，期望 4，实际=%v", result.TotalCredits)
	}
}

// ── GPA 舍入 ──

func TestComputeSummary_GPARoundHalfUp(t *testing.T) {
	// A+ 1学分 + A0 2学分: (2×45 + 4×40)/60 = 250/60 = 4.1666… → 4.167
	courses := []model.Course{
		mkCourse("과목A", model.CategoryBSM, 1, "A+"),
		mkCourse("과목B", model.CategoryBSM, 2, "A0"),
	}

	result := ComputeSummary(courses, testPolicy(), false)
	if result.GPA != 4.167 {
		t.Errorf("GPA 三位半进位期望 4.167，实际=%v", result.GPA)
	}
}

func TestComputeSummary_GPAZeroWhenNoGradedCourses(t *testing.T) {
	courses := []model.Course{
		mkCourse("채플", model.CategoryFaithWorldview, 0.5, "P"),
	}

	result := ComputeSummary(courses, testPolicy(), false)
	if result.GPA != 0 {
		t.Errorf("无等级制课程时 GPA 应为 0，实际=%v", result.GPA)
	}
}

// ── 成绩归一化 ──

func TestComputeSummary_GradeNormalization(t *testing.T) {
	courses := []model.Course{
		mkCourse("과목A", model.CategoryBSM, 3, "a+"),  // 小写
		mkCourse("과목B", model.CategoryBSM, 3, "b"),   // 裸字母 → B0
		mkCourse("과목C", model.CategoryBSM, 3, " P "), // 两侧空白
	}

	result := ComputeSummary(courses, testPolicy(), false)

	if result.TotalCredits != 9 {
		t.Errorf("归一化后三门都应计入，期望 9，实际=%v", result.TotalCredits)
	}
	// (6×45 + 6×30)/120 = 450/120 = 3.75
	if result.GPA != 3.75 {
		t.Errorf("GPA 期望 3.75，实际=%v", result.GPA)
	}
	if result.PFCredits != 3 {
		t.Errorf("P/F 学分期望 3，实际=%v", result.PFCredits)
	}
}

// ── 英语授课规定 ──

func TestComputeSummary_EnglishRules(t *testing.T) {
	policy := testPolicy()

	cases := []struct {
		name    string
		major   int
		liberal int
		want    bool
	}{
		{"A 方案恰好达标", 21, 9, true},
		{"B 方案恰好达标", 24, 6, true},
		{"专业差一分", 20, 9, false},
		{"教养差一分且专业不足 B 方案", 21, 8, false},
		{"B 方案补足 A 方案教养缺口", 24, 7, true},
		{"双双不足", 10, 3, false},
	}

	for _, tc := range cases {
		if got := checkEnglishRules(policy, tc.major, tc.liberal); got != tc.want {
			t.Errorf("%s: checkEnglishRules(%d, %d)=%v，期望 %v", tc.name, tc.major, tc.liberal, got, tc.want)
		}
	}
}

func TestComputeSummary_EnglishCreditSplit(t *testing.T) {
	courses := []model.Course{
		mkEnglishCourse("전공영어", model.CategoryMajor, 3, "A0"),
		mkEnglishCourse("설계영어", model.CategoryMajorDesigned, 3, "A0"),
		mkEnglishCourse("교양영어", model.CategoryGeneralEdu, 3, "A0"),
		mkEnglishCourse("실무영어", model.CategoryPracticalEnglish, 3, "A0"), // 不计任何一侧
		mkCourse("일반전공", model.CategoryMajor, 3, "A0"),                     // 非英语授课
	}

	result := ComputeSummary(courses, testPolicy(), false)

	if result.EngMajorCredits != 6 {
		t.Errorf("专业英语期望 6（MAJOR+MAJOR_DESIGNED），实际=%d", result.EngMajorCredits)
	}
	if result.EngLiberalCredits != 3 {
		t.Errorf("教养英语期望 3（实务英语不计），实际=%d", result.EngLiberalCredits)
	}
}

// ── 学科附加要求 ──

func TestComputeSummary_DeptExtraRequiresAllGroups(t *testing.T) {
	policy := testPolicy()

	// 只过了毕业设计1
	courses := []model.Course{
		mkMajorCourse("캡스톤디자인1", 3, "A0", 3),
	}
	if ComputeSummary(courses, policy, false).DeptExtraPassed {
		t.Error("只通过一组时学科附加要求不应满足")
	}

	// 两组都过（第二组用带空格变体）
	courses = append(courses, mkMajorCourse("캡스톤디자인 2", 3, "B0", 3))
	if !ComputeSummary(courses, policy, false).DeptExtraPassed {
		t.Error("两组都通过时学科附加要求应满足")
	}

	// F 不算通过
	courses[1].Grade = "F"
	if ComputeSummary(courses, policy, false).DeptExtraPassed {
		t.Error("F 成绩不应满足学科附加要求")
	}
}

// ── 纯函数性质 ──

func TestComputeSummary_Idempotent(t *testing.T) {
	courses := fullPassCourses()
	policy := testPolicy()

	first := ComputeSummary(courses, policy, true)
	second := ComputeSummary(courses, policy, true)

	if first.TotalCredits != second.TotalCredits ||
		first.GPA != second.GPA ||
		first.PFCredits != second.PFCredits ||
		first.FinalPass != second.FinalPass {
		t.Error("相同输入重复计算结果应一致")
	}
	if len(first.Rows) != len(second.Rows) {
		t.Fatal("行数不一致")
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Key != b.Key || a.Earned != b.Earned || a.Status != b.Status || a.Required != b.Required {
			t.Errorf("第 %d 行不一致: %+v vs %+v", i, a, b)
		}
	}
}

// [自证通过] internal/service/summary_calculator_test.go
