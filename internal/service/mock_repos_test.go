package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
	pkgerrors "workmate/backend/pkg/errors"
)

// ── Mock WorkerRepository ──

type mockWorkerRepo struct {
	workers map[string]*model.Worker
}

func newMockWorkerRepo() *mockWorkerRepo {
	return &mockWorkerRepo{workers: make(map[string]*model.Worker)}
}

func (m *mockWorkerRepo) Create(_ context.Context, worker *model.Worker) error {
	if worker.WorkerID == "" {
		worker.WorkerID = fmt.Sprintf("worker-%d", len(m.workers)+1)
	}
	for _, w := range m.workers {
		if w.Email == worker.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.workers[worker.WorkerID] = worker
	return nil
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id string) (*model.Worker, error) {
	if w, ok := m.workers[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) GetByEmail(_ context.Context, email string) (*model.Worker, error) {
	for _, w := range m.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) ListEligible(_ context.Context) ([]model.Worker, error) {
	var result []model.Worker
	for _, w := range m.workers {
		if w.IsActive {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkerID < result[j].WorkerID })
	return result, nil
}

func (m *mockWorkerRepo) List(_ context.Context, isActive *bool, role string, offset, limit int) ([]model.Worker, int64, error) {
	var result []model.Worker
	for _, w := range m.workers {
		if isActive != nil && w.IsActive != *isActive {
			continue
		}
		if role != "" && w.Role != role {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkerID < result[j].WorkerID })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockWorkerRepo) Update(_ context.Context, worker *model.Worker) error {
	if _, ok := m.workers[worker.WorkerID]; !ok {
		return pkgerrors.ErrOptimisticLock
	}
	m.workers[worker.WorkerID] = worker
	return nil
}

func (m *mockWorkerRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	w, ok := m.workers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.PasswordHash = passwordHash
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	nextID int
	// failReassign 置位后 ReassignOwner 直接报错，用于验证事务回滚
	failReassign bool
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.nextID++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	for i := range shifts {
		sh := shifts[i]
		if err := m.Create(ctx, &sh); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByWorker(_ context.Context, workerID string, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.WorkerID == workerID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockShiftRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockShiftRepo) ReassignOwner(_ context.Context, shiftID, fromWorkerID, toWorkerID, noteLine string, operatorID string) error {
	if m.failReassign {
		return fmt.Errorf("模拟存储故障")
	}
	s, ok := m.shifts[shiftID]
	if !ok || s.WorkerID != fromWorkerID {
		return pkgerrors.ErrOptimisticLock
	}
	s.WorkerID = toWorkerID
	if s.Note != "" {
		s.Note += "\n"
	}
	s.Note += noteLine
	s.UpdatedBy = &operatorID
	s.Version++
	return nil
}

// ── Mock SwapRequestRepository ──

type mockSwapRequestRepo struct {
	requests map[string]*model.SwapRequest
	nextID   int
	// workers / shifts 用于 GetByID 时挂关联
	workers *mockWorkerRepo
	shifts  *mockShiftRepo
}

func newMockSwapRequestRepo(workers *mockWorkerRepo, shifts *mockShiftRepo) *mockSwapRequestRepo {
	return &mockSwapRequestRepo{
		requests: make(map[string]*model.SwapRequest),
		workers:  workers,
		shifts:   shifts,
	}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	for _, r := range m.requests {
		if r.ShiftID == req.ShiftID && r.IsActive() {
			return gorm.ErrDuplicatedKey
		}
	}
	if req.SwapRequestID == "" {
		m.nextID++
		req.SwapRequestID = fmt.Sprintf("swap-%d", m.nextID)
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	m.requests[req.SwapRequestID] = req
	return nil
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	if m.shifts != nil {
		if s, ok := m.shifts.shifts[r.ShiftID]; ok {
			shift := *s
			out.Shift = &shift
		}
	}
	if m.workers != nil {
		if w, ok := m.workers.workers[r.RequesterID]; ok {
			out.Requester = w
		}
		if r.ClaimantID != nil {
			if w, ok := m.workers.workers[*r.ClaimantID]; ok {
				out.Claimant = w
			}
		}
	}
	return &out, nil
}

func (m *mockSwapRequestRepo) GetActiveByShift(_ context.Context, shiftID string) (*model.SwapRequest, error) {
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.IsActive() {
			out := *r
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRequestRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var result []model.SwapRequest
	for _, r := range m.requests {
		if r.Status == status {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SwapRequestID < result[j].SwapRequestID })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSwapRequestRepo) ListByWorker(_ context.Context, workerID string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var result []model.SwapRequest
	for _, r := range m.requests {
		if r.RequesterID == workerID || (r.ClaimantID != nil && *r.ClaimantID == workerID) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SwapRequestID < result[j].SwapRequestID })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSwapRequestRepo) ClaimIfOpen(_ context.Context, id, claimantID, newStatus, decisionReason string) (bool, error) {
	r, ok := m.requests[id]
	if !ok || r.Status != model.SwapStatusOpen {
		return false, nil
	}
	r.ClaimantID = &claimantID
	r.Status = newStatus
	r.DecisionReason = decisionReason
	if newStatus == model.SwapStatusApproved {
		r.ApprovedBy = &claimantID
	}
	r.UpdatedAt = time.Now()
	r.Version++
	return true, nil
}

func (m *mockSwapRequestRepo) ApproveIfPending(_ context.Context, id, approverID string) (bool, error) {
	r, ok := m.requests[id]
	if !ok || r.Status != model.SwapStatusPendingApproval || r.ClaimantID == nil {
		return false, nil
	}
	r.Status = model.SwapStatusApproved
	r.ApprovedBy = &approverID
	r.UpdatedAt = time.Now()
	r.Version++
	return true, nil
}

func (m *mockSwapRequestRepo) RejectIfActive(_ context.Context, id, approverID, reason string) (bool, error) {
	r, ok := m.requests[id]
	if !ok || !r.IsActive() {
		return false, nil
	}
	r.Status = model.SwapStatusRejected
	r.ApprovedBy = &approverID
	r.DecisionReason = reason
	r.UpdatedAt = time.Now()
	r.Version++
	return true, nil
}

// ── Mock TransferLogRepository ──

type mockTransferLogRepo struct {
	logs []model.ShiftTransferLog
}

func newMockTransferLogRepo() *mockTransferLogRepo {
	return &mockTransferLogRepo{}
}

func (m *mockTransferLogRepo) Create(_ context.Context, log *model.ShiftTransferLog) error {
	if log.TransferLogID == "" {
		log.TransferLogID = fmt.Sprintf("tlog-%d", len(m.logs)+1)
	}
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockTransferLogRepo) ListByShift(_ context.Context, shiftID string) ([]model.ShiftTransferLog, error) {
	var result []model.ShiftTransferLog
	for _, l := range m.logs {
		if l.ShiftID == shiftID {
			result = append(result, l)
		}
	}
	return result, nil
}

// ── Mock AutomationConfigRepository ──

type mockAutomationConfigRepo struct {
	cfg *model.AutomationConfig
}

func newMockAutomationConfigRepo() *mockAutomationConfigRepo {
	return &mockAutomationConfigRepo{
		cfg: &model.AutomationConfig{
			Singleton:           true,
			AutoScheduleEnabled: false,
			MinStaffPerShift:    1,
			OperatingHoursStart: "09:00",
			OperatingHoursEnd:   "18:00",
			MinRestHours:        0,
		},
	}
}

func (m *mockAutomationConfigRepo) Get(_ context.Context) (*model.AutomationConfig, error) {
	out := *m.cfg
	return &out, nil
}

func (m *mockAutomationConfigRepo) Update(_ context.Context, cfg *model.AutomationConfig) error {
	c := *cfg
	m.cfg = &c
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByWorker(_ context.Context, workerID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.WorkerID != workerID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, workerID string) (bool, error) {
	for _, n := range m.notifications {
		if n.NotificationID == id && n.WorkerID == workerID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

// ── Mock TxManager ──

// mockTxManager 进入事务前对全部 mock 状态做快照，fn 报错时整体还原，
// 从而在内存实现上复现"要么全部生效要么全部回滚"的语义
type mockTxManager struct {
	repos *testRepos
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	snapshot := m.repos.snapshot()
	if err := fn(m.repos.toRepository()); err != nil {
		m.repos.restore(snapshot)
		return err
	}
	return nil
}

// ── 聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	worker           *mockWorkerRepo
	shift            *mockShiftRepo
	swapRequest      *mockSwapRequestRepo
	transferLog      *mockTransferLogRepo
	automationConfig *mockAutomationConfigRepo
	notification     *mockNotificationRepo
}

func newTestRepos() *testRepos {
	worker := newMockWorkerRepo()
	shift := newMockShiftRepo()
	return &testRepos{
		worker:           worker,
		shift:            shift,
		swapRequest:      newMockSwapRequestRepo(worker, shift),
		transferLog:      newMockTransferLogRepo(),
		automationConfig: newMockAutomationConfigRepo(),
		notification:     newMockNotificationRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Worker:           r.worker,
		Shift:            r.shift,
		SwapRequest:      r.swapRequest,
		TransferLog:      r.transferLog,
		AutomationConfig: r.automationConfig,
		Notification:     r.notification,
		Tx:               &mockTxManager{repos: r},
	}
}

// reposSnapshot 事务快照：深拷贝事务内可能被改写的状态
type reposSnapshot struct {
	shifts   map[string]*model.Shift
	requests map[string]*model.SwapRequest
	logs     []model.ShiftTransferLog
}

func (r *testRepos) snapshot() *reposSnapshot {
	snap := &reposSnapshot{
		shifts:   make(map[string]*model.Shift, len(r.shift.shifts)),
		requests: make(map[string]*model.SwapRequest, len(r.swapRequest.requests)),
		logs:     append([]model.ShiftTransferLog(nil), r.transferLog.logs...),
	}
	for id, s := range r.shift.shifts {
		cp := *s
		snap.shifts[id] = &cp
	}
	for id, req := range r.swapRequest.requests {
		cp := *req
		snap.requests[id] = &cp
	}
	return snap
}

func (r *testRepos) restore(snap *reposSnapshot) {
	r.shift.shifts = snap.shifts
	r.swapRequest.requests = snap.requests
	r.transferLog.logs = snap.logs
}
