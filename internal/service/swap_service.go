package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workmate/backend/config"
	"workmate/backend/internal/dto"
	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
	pkgerrors "workmate/backend/pkg/errors"
)

var (
	ErrShiftNotFound        = errors.New("班次不存在")
	ErrNotShiftOwner        = errors.New("只能为自己持有的班次发起换班")
	ErrShiftNotTransferable = errors.New("班次已开始或已结束，不可换班")
	ErrActiveSwapExists     = errors.New("该班次已存在进行中的换班申请")
	ErrSwapRequestNotFound  = errors.New("换班申请不存在")
	ErrSwapRequestNotOpen   = errors.New("换班申请已被认领或已关闭")
	ErrSelfClaim            = errors.New("不能认领自己发起的换班申请")
	ErrSwapInvalidState     = errors.New("换班申请当前状态不允许该操作")
)

// SwapService 换班市场服务
type SwapService interface {
	Create(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error)
	Claim(ctx context.Context, swapRequestID, claimantID string) (*dto.ClaimSwapResponse, error)
	Approve(ctx context.Context, swapRequestID, approverID string) (*dto.SwapRequestResponse, error)
	Reject(ctx context.Context, swapRequestID, approverID string, req *dto.RejectSwapRequest) (*dto.SwapRequestResponse, error)
	GetByID(ctx context.Context, swapRequestID string) (*dto.SwapRequestResponse, error)
	ListOpen(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error)
	ListPending(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error)
	ListMine(ctx context.Context, workerID string, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error)
}

type swapService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewSwapService(cfg *config.Config, repo *repository.Repository, notifier Notifier, logger *zap.Logger) SwapService {
	return &swapService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

// Create 班次持有人发起换班申请
func (s *swapService) Create(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error) {
	// 1. 校验班次归属
	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if shift.WorkerID != requesterID {
		return nil, ErrNotShiftOwner
	}
	if !shift.StartTime.After(time.Now()) {
		return nil, ErrShiftNotTransferable
	}

	// 2. 同一班次最多一个活跃申请（先查后插，部分唯一索引兜底并发竞争）
	if _, err := s.repo.SwapRequest.GetActiveByShift(ctx, req.ShiftID); err == nil {
		return nil, ErrActiveSwapExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	swap := &model.SwapRequest{
		ShiftID:     req.ShiftID,
		RequesterID: requesterID,
		Status:      model.SwapStatusOpen,
		Reason:      req.Reason,
	}
	if err := s.repo.SwapRequest.Create(ctx, swap); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActiveSwapExists
		}
		return nil, err
	}

	s.logger.Info("换班申请已发布",
		zap.String("swap_request_id", swap.SwapRequestID),
		zap.String("shift_id", req.ShiftID),
		zap.String("requester_id", requesterID))
	s.notifier.SwapCreated(ctx, swap)

	full, err := s.repo.SwapRequest.GetByID(ctx, swap.SwapRequestID)
	if err != nil {
		full = swap
	}
	resp := dto.ToSwapRequestResponse(full)
	return &resp, nil
}

// Claim 同事认领换班申请
//
// 认领是状态机的分叉点：
//   - 约束校验通过 → 原子完成认领 + 班次转移 + 审计日志，自动批准
//   - 约束校验不通过 → 转入 pending_approval，携带校验原因等待经理裁决
//
// 并发认领由条件更新兜底：同一 open 申请只有一次认领会生效，落败方收到 ErrSwapRequestNotOpen。
func (s *swapService) Claim(ctx context.Context, swapRequestID, claimantID string) (*dto.ClaimSwapResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapRequestNotFound
		}
		return nil, err
	}
	if swap.Status != model.SwapStatusOpen {
		return nil, ErrSwapRequestNotOpen
	}
	if swap.RequesterID == claimantID {
		return nil, ErrSelfClaim
	}
	shift := swap.Shift
	if shift == nil {
		if shift, err = s.repo.Shift.GetByID(ctx, swap.ShiftID); err != nil {
			return nil, err
		}
	}

	// 以认领人当前班表执行约束校验，决定走自动批准还是人工审批
	result, err := s.validateClaimant(ctx, claimantID, shift)
	if err != nil {
		return nil, err
	}

	if result.Valid {
		// 自动批准：认领、转移、审计同一事务提交
		err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
			ok, err := txRepo.SwapRequest.ClaimIfOpen(ctx, swapRequestID, claimantID, model.SwapStatusApproved, "约束校验通过，自动批准")
			if err != nil {
				return err
			}
			if !ok {
				return ErrSwapRequestNotOpen
			}
			noteLine := fmt.Sprintf("%s 由换班自动转移", time.Now().In(s.cfg.Schedule.Location()).Format("2006-01-02 15:04"))
			if err := txRepo.Shift.ReassignOwner(ctx, swap.ShiftID, swap.RequesterID, claimantID, noteLine, claimantID); err != nil {
				return err
			}
			return txRepo.TransferLog.Create(ctx, &model.ShiftTransferLog{
				ShiftID:       swap.ShiftID,
				SwapRequestID: swapRequestID,
				FromWorkerID:  swap.RequesterID,
				ToWorkerID:    claimantID,
				TransferType:  model.TransferTypeAuto,
				OperatorID:    claimantID,
			})
		})
	} else {
		ok, claimErr := s.repo.SwapRequest.ClaimIfOpen(ctx, swapRequestID, claimantID, model.SwapStatusPendingApproval, result.Reason)
		if claimErr != nil {
			err = claimErr
		} else if !ok {
			err = ErrSwapRequestNotOpen
		}
	}
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrSwapRequestNotOpen
		}
		return nil, err
	}

	updated, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClaimSwapResponse{AutoApproved: result.Valid}
	full := dto.ToSwapRequestResponse(updated)
	resp.Request = &full
	if result.Valid {
		resp.Message = "认领成功，班次已转移到你名下"
		s.logger.Info("换班自动批准",
			zap.String("swap_request_id", swapRequestID),
			zap.String("claimant_id", claimantID))
		s.notifier.SwapAutoApproved(ctx, updated)
	} else {
		resp.Message = fmt.Sprintf("认领已提交经理审批：%s", result.Reason)
		s.logger.Info("换班转入人工审批",
			zap.String("swap_request_id", swapRequestID),
			zap.String("claimant_id", claimantID),
			zap.String("reason", result.Reason))
		s.notifier.SwapPending(ctx, updated, s.managerIDs(ctx))
	}
	return resp, nil
}

// Approve 经理批准待审批的换班申请，随申请原子完成班次转移
func (s *swapService) Approve(ctx context.Context, swapRequestID, approverID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapRequestNotFound
		}
		return nil, err
	}
	if swap.Status != model.SwapStatusPendingApproval || swap.ClaimantID == nil {
		return nil, ErrSwapInvalidState
	}
	claimantID := *swap.ClaimantID

	err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		ok, err := txRepo.SwapRequest.ApproveIfPending(ctx, swapRequestID, approverID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSwapInvalidState
		}
		noteLine := fmt.Sprintf("%s 经理批准换班转移", time.Now().In(s.cfg.Schedule.Location()).Format("2006-01-02 15:04"))
		if err := txRepo.Shift.ReassignOwner(ctx, swap.ShiftID, swap.RequesterID, claimantID, noteLine, approverID); err != nil {
			return err
		}
		return txRepo.TransferLog.Create(ctx, &model.ShiftTransferLog{
			ShiftID:       swap.ShiftID,
			SwapRequestID: swapRequestID,
			FromWorkerID:  swap.RequesterID,
			ToWorkerID:    claimantID,
			TransferType:  model.TransferTypeManual,
			OperatorID:    approverID,
		})
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrSwapInvalidState
		}
		return nil, err
	}

	updated, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("换班人工批准",
		zap.String("swap_request_id", swapRequestID),
		zap.String("approver_id", approverID))
	s.notifier.SwapApproved(ctx, updated)

	resp := dto.ToSwapRequestResponse(updated)
	return &resp, nil
}

// Reject 经理驳回换班申请（open 或 pending_approval 均可），班次保持原持有人
func (s *swapService) Reject(ctx context.Context, swapRequestID, approverID string, req *dto.RejectSwapRequest) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapRequestNotFound
		}
		return nil, err
	}
	if !swap.IsActive() {
		return nil, ErrSwapInvalidState
	}

	reason := req.Reason
	if reason == "" {
		reason = "经理驳回"
	}
	ok, err := s.repo.SwapRequest.RejectIfActive(ctx, swapRequestID, approverID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSwapInvalidState
	}

	updated, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("换班申请驳回",
		zap.String("swap_request_id", swapRequestID),
		zap.String("approver_id", approverID))
	s.notifier.SwapRejected(ctx, updated)

	resp := dto.ToSwapRequestResponse(updated)
	return &resp, nil
}

// GetByID 查询单条换班申请
func (s *swapService) GetByID(ctx context.Context, swapRequestID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, swapRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapRequestNotFound
		}
		return nil, err
	}
	resp := dto.ToSwapRequestResponse(swap)
	return &resp, nil
}

// ListOpen 换班市场：可认领的申请
func (s *swapService) ListOpen(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	items, total, err := s.repo.SwapRequest.ListByStatus(ctx, model.SwapStatusOpen, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToSwapRequestResponses(items), total, nil
}

// ListPending 经理视角：待审批的申请
func (s *swapService) ListPending(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	items, total, err := s.repo.SwapRequest.ListByStatus(ctx, model.SwapStatusPendingApproval, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToSwapRequestResponses(items), total, nil
}

// ListMine 我发起或认领的申请
func (s *swapService) ListMine(ctx context.Context, workerID string, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	items, total, err := s.repo.SwapRequest.ListByWorker(ctx, workerID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToSwapRequestResponses(items), total, nil
}

// validateClaimant 以认领人视角执行约束校验
// 取目标班次所在 ISO 周前后各两天的班表，覆盖同日、周工时与休息间隔三类约束所需的邻域
func (s *swapService) validateClaimant(ctx context.Context, claimantID string, shift *model.Shift) (ValidationResult, error) {
	claimant, err := s.repo.Worker.GetByID(ctx, claimantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationResult{Valid: false, Reason: "员工不存在"}, nil
		}
		return ValidationResult{}, err
	}

	loc := s.cfg.Schedule.Location()
	weekStart := mondayOf(shift.StartTime, loc)
	from := weekStart.AddDate(0, 0, -2)
	to := weekStart.AddDate(0, 0, 9)
	existing, err := s.repo.Shift.ListByWorker(ctx, claimantID, from, to)
	if err != nil {
		return ValidationResult{}, err
	}

	autoCfg, err := s.repo.AutomationConfig.Get(ctx)
	minRest := 0
	if err == nil {
		minRest = autoCfg.MinRestHours
	}

	return ValidateAssignment(AssignmentCheck{
		Worker:         claimant,
		ProposedStart:  shift.StartTime,
		ProposedEnd:    shift.EndTime,
		ExistingShifts: existing,
		ExcludeShiftID: shift.ShiftID,
		MinRestHours:   minRest,
		Location:       loc,
	}), nil
}

// managerIDs 全部在职经理，用于待审批通知投递
func (s *swapService) managerIDs(ctx context.Context) []string {
	active := true
	managers, _, err := s.repo.Worker.List(ctx, &active, model.RoleManager, 0, 100)
	if err != nil {
		s.logger.Warn("查询经理列表失败", zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(managers))
	for i := range managers {
		ids = append(ids, managers[i].WorkerID)
	}
	return ids
}

// mondayOf 时刻所在 ISO 周的周一零点（排班时区）
func mondayOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	offset := (int(lt.Weekday()) + 6) % 7
	day := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -offset)
}
