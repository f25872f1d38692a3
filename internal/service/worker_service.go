package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
)

var (
	ErrWorkerNotFound = errors.New("员工不存在")
	ErrEmailTaken     = errors.New("邮箱已被注册")
)

// WorkerService 员工管理服务
type WorkerService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateWorkerRequest) (*dto.WorkerResponse, error)
	GetByID(ctx context.Context, workerID string) (*dto.WorkerResponse, error)
	List(ctx context.Context, req *dto.WorkerListRequest) ([]dto.WorkerResponse, int64, error)
	Update(ctx context.Context, operatorID, workerID string, req *dto.UpdateWorkerRequest) (*dto.WorkerResponse, error)
}

type workerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewWorkerService(repo *repository.Repository, logger *zap.Logger) WorkerService {
	return &workerService{repo: repo, logger: logger}
}

// Create 经理创建员工账号
func (s *workerService) Create(ctx context.Context, operatorID string, req *dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	if _, err := s.repo.Worker.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleWorker
	}
	maxHours := req.MaxWeeklyHours
	if maxHours <= 0 {
		maxHours = 40
	}
	worker := &model.Worker{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           role,
		IsActive:       true,
		MaxWeeklyHours: maxHours,
	}
	worker.CreatedBy = &operatorID
	if err := s.repo.Worker.Create(ctx, worker); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("员工账号已创建",
		zap.String("worker_id", worker.WorkerID),
		zap.String("operator_id", operatorID))
	resp := dto.ToWorkerResponse(worker)
	return &resp, nil
}

func (s *workerService) GetByID(ctx context.Context, workerID string) (*dto.WorkerResponse, error) {
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

func (s *workerService) List(ctx context.Context, req *dto.WorkerListRequest) ([]dto.WorkerResponse, int64, error) {
	workers, total, err := s.repo.Worker.List(ctx, req.IsActive, req.Role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, dto.ToWorkerResponse(&workers[i]))
	}
	return out, total, nil
}

// Update 经理更新员工资料（姓名、在职状态、周工时上限、角色）
func (s *workerService) Update(ctx context.Context, operatorID, workerID string, req *dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}
	if req.MaxWeeklyHours != nil {
		worker.MaxWeeklyHours = *req.MaxWeeklyHours
	}
	if req.Role != nil {
		worker.Role = *req.Role
	}
	worker.Touch(operatorID)

	if err := s.repo.Worker.Update(ctx, worker); err != nil {
		return nil, err
	}

	s.logger.Info("员工资料已更新",
		zap.String("worker_id", workerID),
		zap.String("operator_id", operatorID))
	resp := dto.ToWorkerResponse(worker)
	return &resp, nil
}
