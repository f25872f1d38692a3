package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/repository"
)

// AutomationConfigService 自动排班配置服务
type AutomationConfigService interface {
	Get(ctx context.Context) (*dto.AutomationConfigResponse, error)
	Update(ctx context.Context, operatorID string, req *dto.UpdateAutomationConfigRequest) (*dto.AutomationConfigResponse, error)
}

type automationConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAutomationConfigService(repo *repository.Repository, logger *zap.Logger) AutomationConfigService {
	return &automationConfigService{repo: repo, logger: logger}
}

func (s *automationConfigService) Get(ctx context.Context) (*dto.AutomationConfigResponse, error) {
	cfg, err := s.repo.AutomationConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AutomationConfigResponse{
		AutoScheduleEnabled: cfg.AutoScheduleEnabled,
		MinStaffPerShift:    cfg.MinStaffPerShift,
		OperatingHoursStart: cfg.OperatingHoursStart,
		OperatingHoursEnd:   cfg.OperatingHoursEnd,
		MinRestHours:        cfg.MinRestHours,
		UpdatedAt:           cfg.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// Update 部分更新自动排班配置，营业时间在落库前做格式校验
func (s *automationConfigService) Update(ctx context.Context, operatorID string, req *dto.UpdateAutomationConfigRequest) (*dto.AutomationConfigResponse, error) {
	cfg, err := s.repo.AutomationConfig.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.AutoScheduleEnabled != nil {
		cfg.AutoScheduleEnabled = *req.AutoScheduleEnabled
	}
	if req.MinStaffPerShift != nil {
		cfg.MinStaffPerShift = *req.MinStaffPerShift
	}
	if req.OperatingHoursStart != nil {
		if _, err := parseClock(*req.OperatingHoursStart); err != nil {
			return nil, ErrMalformedOperatingHours
		}
		cfg.OperatingHoursStart = *req.OperatingHoursStart
	}
	if req.OperatingHoursEnd != nil {
		if _, err := parseClock(*req.OperatingHoursEnd); err != nil {
			return nil, ErrMalformedOperatingHours
		}
		cfg.OperatingHoursEnd = *req.OperatingHoursEnd
	}
	if req.MinRestHours != nil {
		cfg.MinRestHours = *req.MinRestHours
	}

	start, err := parseClock(cfg.OperatingHoursStart)
	if err != nil {
		return nil, ErrMalformedOperatingHours
	}
	end, err := parseClock(cfg.OperatingHoursEnd)
	if err != nil {
		return nil, ErrMalformedOperatingHours
	}
	if !end.after(start) {
		return nil, ErrMalformedOperatingHours
	}

	cfg.Touch(operatorID)
	if err := s.repo.AutomationConfig.Update(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info("自动排班配置已更新", zap.String("operator_id", operatorID))
	return s.Get(ctx)
}
