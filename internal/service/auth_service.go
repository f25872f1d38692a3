package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workmate/backend/config"
	"workmate/backend/internal/dto"
	"workmate/backend/internal/repository"
	"workmate/backend/pkg/jwt"
	"workmate/backend/pkg/redis"
)

var (
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrWorkerInactive      = errors.New("账号已停用")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已过期")
	ErrOldPasswordWrong    = errors.New("原密码错误")
)

// AuthService 认证服务
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	GetCurrentWorker(ctx context.Context, workerID string) (*dto.WorkerResponse, error)
	ChangePassword(ctx context.Context, workerID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// Login 邮箱密码登录，签发双令牌
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询员工
	worker, err := s.repo.Worker.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	// 2. 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 在职校验
	if !worker.IsActive {
		return nil, ErrWorkerInactive
	}

	// 4. 签发令牌
	accessToken, err := s.jwtMgr.GenerateAccessToken(worker.WorkerID, worker.Role)
	if err != nil {
		s.logger.Error("签发访问令牌失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(worker.WorkerID, worker.Role, req.RememberMe)
	if err != nil {
		s.logger.Error("签发刷新令牌失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("员工登录成功", zap.String("worker_id", worker.WorkerID))
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Worker:       dto.ToWorkerResponse(worker),
	}, nil
}

// Logout 将访问令牌加入黑名单直至其自然过期
func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if s.rdb == nil {
		// 未接入 Redis 时退化为无状态登出
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, token, ttl)
}

// RefreshToken 用刷新令牌换取新的令牌对
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	worker, err := s.repo.Worker.GetByID(ctx, claims.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !worker.IsActive {
		return nil, ErrWorkerInactive
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(worker.WorkerID, worker.Role)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(worker.WorkerID, worker.Role, claims.RememberMe)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Worker:       dto.ToWorkerResponse(worker),
	}, nil
}

// GetCurrentWorker 获取当前登录员工信息
func (s *authService) GetCurrentWorker(ctx context.Context, workerID string) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	resp := dto.ToWorkerResponse(worker)
	return &resp, nil
}

// ChangePassword 修改密码
func (s *authService) ChangePassword(ctx context.Context, workerID string, req *dto.ChangePasswordRequest) error {
	worker, err := s.repo.Worker.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Worker.UpdatePassword(ctx, workerID, string(hash))
}
