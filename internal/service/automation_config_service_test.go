package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"workmate/backend/internal/dto"
)

func setupTestAutomationConfigService() (AutomationConfigService, *testRepos) {
	repos := newTestRepos()
	svc := NewAutomationConfigService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestAutomationConfigService_Get(t *testing.T) {
	svc, _ := setupTestAutomationConfigService()

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("查询配置应成功: %v", err)
	}
	if cfg.AutoScheduleEnabled {
		t.Error("自动排班默认应为关闭")
	}
	if cfg.OperatingHoursStart == "" || cfg.OperatingHoursEnd == "" {
		t.Error("营业时间不应为空")
	}
}

func TestAutomationConfigService_Update_Partial(t *testing.T) {
	svc, repos := setupTestAutomationConfigService()

	enabled := true
	minStaff := 3
	resp, err := svc.Update(context.Background(), "manager-1", &dto.UpdateAutomationConfigRequest{
		AutoScheduleEnabled: &enabled,
		MinStaffPerShift:    &minStaff,
	})
	if err != nil {
		t.Fatalf("更新配置应成功: %v", err)
	}
	if !resp.AutoScheduleEnabled || resp.MinStaffPerShift != 3 {
		t.Errorf("更新字段未生效: enabled=%v minStaff=%d", resp.AutoScheduleEnabled, resp.MinStaffPerShift)
	}
	// 未传字段保持原值
	if resp.OperatingHoursStart != repos.automationConfig.cfg.OperatingHoursStart {
		t.Error("未传字段不应被改写")
	}
}

func TestAutomationConfigService_Update_MalformedHours(t *testing.T) {
	svc, _ := setupTestAutomationConfigService()

	bad := "早上九点"
	_, err := svc.Update(context.Background(), "manager-1", &dto.UpdateAutomationConfigRequest{
		OperatingHoursStart: &bad,
	})
	if !errors.Is(err, ErrMalformedOperatingHours) {
		t.Fatalf("期望 ErrMalformedOperatingHours，实际=%v", err)
	}
}

func TestAutomationConfigService_Update_EndBeforeStart(t *testing.T) {
	svc, _ := setupTestAutomationConfigService()

	start := "18:00"
	end := "09:00"
	_, err := svc.Update(context.Background(), "manager-1", &dto.UpdateAutomationConfigRequest{
		OperatingHoursStart: &start,
		OperatingHoursEnd:   &end,
	})
	if !errors.Is(err, ErrMalformedOperatingHours) {
		t.Fatalf("结束早于开始期望 ErrMalformedOperatingHours，实际=%v", err)
	}
}
