package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/repository"
)

var ErrInvalidTimeRange = errors.New("时间范围无效")

// ShiftService 班次查询服务
type ShiftService interface {
	GetByID(ctx context.Context, shiftID string) (*dto.ShiftResponse, error)
	ListMine(ctx context.Context, workerID string, req *dto.ShiftRangeRequest) ([]dto.ShiftResponse, error)
	ListByRange(ctx context.Context, req *dto.ShiftRangeRequest) ([]dto.ShiftResponse, error)
	TransferHistory(ctx context.Context, shiftID string) ([]dto.TransferLogResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) GetByID(ctx context.Context, shiftID string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	resp := dto.ToShiftResponse(shift)
	return &resp, nil
}

// ListMine 查询自己在给定时间范围内的班次
func (s *shiftService) ListMine(ctx context.Context, workerID string, req *dto.ShiftRangeRequest) ([]dto.ShiftResponse, error) {
	from, to, err := parseRange(req)
	if err != nil {
		return nil, err
	}
	shifts, err := s.repo.Shift.ListByWorker(ctx, workerID, from, to)
	if err != nil {
		return nil, err
	}
	return dto.ToShiftResponses(shifts), nil
}

// ListByRange 经理视角：给定时间范围内的全部班次
func (s *shiftService) ListByRange(ctx context.Context, req *dto.ShiftRangeRequest) ([]dto.ShiftResponse, error) {
	from, to, err := parseRange(req)
	if err != nil {
		return nil, err
	}
	shifts, err := s.repo.Shift.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return dto.ToShiftResponses(shifts), nil
}

// TransferHistory 班次的转移审计记录（时间正序）
func (s *shiftService) TransferHistory(ctx context.Context, shiftID string) ([]dto.TransferLogResponse, error) {
	if _, err := s.repo.Shift.GetByID(ctx, shiftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	logs, err := s.repo.TransferLog.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, dto.ToTransferLogResponse(&logs[i]))
	}
	return out, nil
}

func parseRange(req *dto.ShiftRangeRequest) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from=%q", ErrInvalidTimeRange, req.From)
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to=%q", ErrInvalidTimeRange, req.To)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}
