package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"workmate/backend/internal/dto"
	"workmate/backend/internal/service"
	"workmate/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock SwapService ──

type mockSwapService struct {
	createResult  *dto.SwapRequestResponse
	createErr     error
	claimResult   *dto.ClaimSwapResponse
	claimErr      error
	approveResult *dto.SwapRequestResponse
	approveErr    error
	rejectResult  *dto.SwapRequestResponse
	rejectErr     error
	getResult     *dto.SwapRequestResponse
	getErr        error
	listResult    []dto.SwapRequestResponse
	listTotal     int64
	listErr       error
}

func (m *mockSwapService) Create(_ context.Context, _ string, _ *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSwapService) Claim(_ context.Context, _, _ string) (*dto.ClaimSwapResponse, error) {
	return m.claimResult, m.claimErr
}
func (m *mockSwapService) Approve(_ context.Context, _, _ string) (*dto.SwapRequestResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockSwapService) Reject(_ context.Context, _, _ string, _ *dto.RejectSwapRequest) (*dto.SwapRequestResponse, error) {
	return m.rejectResult, m.rejectErr
}
func (m *mockSwapService) GetByID(_ context.Context, _ string) (*dto.SwapRequestResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSwapService) ListOpen(_ context.Context, _ *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSwapService) ListPending(_ context.Context, _ *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSwapService) ListMine(_ context.Context, _ string, _ *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock SchedulerService ──

type mockSchedulerService struct {
	result *dto.GenerateWeekResponse
	err    error
}

func (m *mockSchedulerService) GenerateWeek(_ context.Context, _ string) (*dto.GenerateWeekResponse, error) {
	return m.result, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// withAuth 注入认证上下文后挂载目标 handler
func withAuth(workerID, role string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("worker_id", workerID)
		c.Set("role", role)
		fn(c)
	}
}

// ═══════════════════════════════════════════════════════════
// SwapHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSwapHandler_CreateSwap_Success(t *testing.T) {
	mock := &mockSwapService{
		createResult: &dto.SwapRequestResponse{ID: "swap-1", Status: "open"},
	}
	h := NewSwapHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps", jsonBody(dto.CreateSwapRequest{
		ShiftID: "d8f3b1a2-0c4e-4f6a-9b7d-2e5c8a1f3b6d",
		Reason:  "家里有事",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/swaps", withAuth("worker-1", "worker", h.CreateSwap))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSwapHandler_CreateSwap_NotOwner(t *testing.T) {
	mock := &mockSwapService{createErr: service.ErrNotShiftOwner}
	h := NewSwapHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps", jsonBody(dto.CreateSwapRequest{
		ShiftID: "d8f3b1a2-0c4e-4f6a-9b7d-2e5c8a1f3b6d",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/swaps", withAuth("worker-1", "worker", h.CreateSwap))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestSwapHandler_CreateSwap_ActiveExists(t *testing.T) {
	mock := &mockSwapService{createErr: service.ErrActiveSwapExists}
	h := NewSwapHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps", jsonBody(dto.CreateSwapRequest{
		ShiftID: "d8f3b1a2-0c4e-4f6a-9b7d-2e5c8a1f3b6d",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/swaps", withAuth("worker-1", "worker", h.CreateSwap))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestSwapHandler_ClaimSwap_RaceLoser(t *testing.T) {
	mock := &mockSwapService{claimErr: service.ErrSwapRequestNotOpen}
	h := NewSwapHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps/swap-1/claim", nil)

	r := gin.New()
	r.POST("/swaps/:id/claim", withAuth("worker-2", "worker", h.ClaimSwap))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("竞争落败应返回 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14005 {
		t.Errorf("expected error code 14005, got %d", resp.Code)
	}
}

func TestSwapHandler_ClaimSwap_Unauthenticated(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/swaps/swap-1/claim", nil)

	r := gin.New()
	r.POST("/swaps/:id/claim", h.ClaimSwap) // 未注入 worker_id
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SchedulerHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSchedulerHandler_GenerateWeek_Success(t *testing.T) {
	mock := &mockSchedulerService{
		result: &dto.GenerateWeekResponse{WeekStart: "2026-09-07", GeneratedCount: 14},
	}
	h := NewSchedulerHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scheduler/generate", nil)

	r := gin.New()
	r.POST("/scheduler/generate", withAuth("manager-1", "manager", h.GenerateWeek))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSchedulerHandler_GenerateWeek_MalformedHours(t *testing.T) {
	mock := &mockSchedulerService{err: service.ErrMalformedOperatingHours}
	h := NewSchedulerHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scheduler/generate", nil)

	r := gin.New()
	r.POST("/scheduler/generate", withAuth("manager-1", "manager", h.GenerateWeek))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}
