package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"workmate/backend/config"
	"workmate/backend/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Schedule: config.ScheduleConfig{Timezone: "Asia/Shanghai"},
	}
}

func setupTestSchedulerService(seed int64) (SchedulerService, *testRepos) {
	repos := newTestRepos()
	svc := NewSchedulerService(testConfig(), repos.toRepository(), func() int64 { return seed }, zap.NewNop())
	return svc, repos
}

// seedWorkers 注入 n 名在职员工，周工时上限 maxHours
func seedWorkers(repos *testRepos, n, maxHours int) {
	names := []string{"张三", "李四", "王五", "赵六", "孙七"}
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		repos.worker.workers["worker-"+id] = &model.Worker{
			WorkerID:       "worker-" + id,
			Name:           names[i%len(names)],
			Email:          "worker-" + id + "@example.com",
			Role:           model.RoleWorker,
			IsActive:       true,
			MaxWeeklyHours: maxHours,
		}
	}
}

func enableAutoSchedule(repos *testRepos, minStaff int, start, end string) {
	repos.automationConfig.cfg.AutoScheduleEnabled = true
	repos.automationConfig.cfg.MinStaffPerShift = minStaff
	repos.automationConfig.cfg.OperatingHoursStart = start
	repos.automationConfig.cfg.OperatingHoursEnd = end
}

// ════════════════════════════════════════════════════════════
// GenerateWeek 测试
// ════════════════════════════════════════════════════════════

func TestSchedulerService_GenerateWeek_Disabled(t *testing.T) {
	svc, repos := setupTestSchedulerService(1)
	seedWorkers(repos, 3, 50)
	// AutoScheduleEnabled 默认 false

	result, err := svc.GenerateWeek(context.Background(), "manager-1")
	if err != nil {
		t.Fatalf("未启用时应为空操作而非错误: %v", err)
	}
	if !result.Disabled {
		t.Error("期望 Disabled=true")
	}
	if result.GeneratedCount != 0 {
		t.Errorf("空操作不应生成班次，实际=%d", result.GeneratedCount)
	}
	if len(repos.shift.shifts) != 0 {
		t.Errorf("空操作不应写入班次，实际=%d", len(repos.shift.shifts))
	}
}

func TestSchedulerService_GenerateWeek_MalformedHours(t *testing.T) {
	svc, repos := setupTestSchedulerService(1)
	seedWorkers(repos, 3, 50)
	enableAutoSchedule(repos, 2, "9点", "18:00")

	_, err := svc.GenerateWeek(context.Background(), "manager-1")
	if !errors.Is(err, ErrMalformedOperatingHours) {
		t.Fatalf("期望 ErrMalformedOperatingHours，实际=%v", err)
	}
	if len(repos.shift.shifts) != 0 {
		t.Error("营业时间非法时不应写入任何班次")
	}
}

func TestSchedulerService_GenerateWeek_FullWeek(t *testing.T) {
	svc, repos := setupTestSchedulerService(42)
	seedWorkers(repos, 3, 50)
	enableAutoSchedule(repos, 2, "09:00", "18:00")

	result, err := svc.GenerateWeek(context.Background(), "manager-1")
	if err != nil {
		t.Fatalf("GenerateWeek 应成功: %v", err)
	}
	if result.Disabled {
		t.Fatal("已启用时不应返回 Disabled")
	}
	// 7 天 × 每天 2 人 = 14 个班次
	if result.GeneratedCount != 14 {
		t.Fatalf("期望生成 14 个班次，实际=%d", result.GeneratedCount)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("人手充足时不应有告警: %v", result.Warnings)
	}

	// 每人 4~5 个班次，且无同日双排
	loads := make(map[string]int)
	daySeen := make(map[string]bool)
	for _, sh := range repos.shift.shifts {
		loads[sh.WorkerID]++
		key := sh.WorkerID + ":" + dayKey(sh.StartTime, testLoc)
		if daySeen[key] {
			t.Fatalf("员工 %s 在 %s 被重复排班", sh.WorkerID, dayKey(sh.StartTime, testLoc))
		}
		daySeen[key] = true
		if sh.Status != model.ShiftStatusPublished {
			t.Errorf("生成的班次应为 published，实际=%s", sh.Status)
		}
	}
	if len(loads) != 3 {
		t.Fatalf("三名员工都应被排入，实际只有 %d 人", len(loads))
	}
	for id, n := range loads {
		if n < 4 || n > 5 {
			t.Errorf("员工 %s 期望 4~5 个班次，实际=%d", id, n)
		}
	}
}

// 公平性：任意两人的班次数相差不超过 1
func TestSchedulerService_GenerateWeek_Fairness(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		svc, repos := setupTestSchedulerService(seed)
		seedWorkers(repos, 4, 60)
		enableAutoSchedule(repos, 3, "08:00", "16:00")

		if _, err := svc.GenerateWeek(context.Background(), "manager-1"); err != nil {
			t.Fatalf("seed=%d: GenerateWeek 应成功: %v", seed, err)
		}

		loads := make(map[string]int)
		for _, sh := range repos.shift.shifts {
			loads[sh.WorkerID]++
		}
		min, max := 1<<30, 0
		for _, n := range loads {
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		if max-min > 1 {
			t.Errorf("seed=%d: 负载差应不超过 1，实际 min=%d max=%d", seed, min, max)
		}
	}
}

// 同一种子两次生成结果一致（针对空库的可复现性）
func TestSchedulerService_GenerateWeek_Deterministic(t *testing.T) {
	run := func() map[string]int {
		svc, repos := setupTestSchedulerService(7)
		seedWorkers(repos, 3, 50)
		enableAutoSchedule(repos, 2, "09:00", "18:00")
		if _, err := svc.GenerateWeek(context.Background(), "manager-1"); err != nil {
			t.Fatalf("GenerateWeek 应成功: %v", err)
		}
		loads := make(map[string]int)
		for _, sh := range repos.shift.shifts {
			loads[sh.WorkerID]++
		}
		return loads
	}

	first := run()
	second := run()
	for id, n := range first {
		if second[id] != n {
			t.Errorf("员工 %s 两次负载不一致: %d vs %d", id, n, second[id])
		}
	}
}

func TestSchedulerService_GenerateWeek_Understaffed(t *testing.T) {
	svc, repos := setupTestSchedulerService(1)
	seedWorkers(repos, 1, 80)
	enableAutoSchedule(repos, 2, "09:00", "18:00")

	result, err := svc.GenerateWeek(context.Background(), "manager-1")
	if err != nil {
		t.Fatalf("人手不足不应中断整周生成: %v", err)
	}
	// 每天只能排入 1 人（同日不可双排）
	if result.GeneratedCount != 7 {
		t.Errorf("期望生成 7 个班次，实际=%d", result.GeneratedCount)
	}
	if len(result.Warnings) != 7 {
		t.Errorf("每天都应有人手不足告警，实际=%d 条", len(result.Warnings))
	}
}

// 既有班次计入负载：本周已排班多的员工新班次更少
func TestSchedulerService_GenerateWeek_SeedsLoadFromExisting(t *testing.T) {
	svc, repos := setupTestSchedulerService(3)
	seedWorkers(repos, 2, 80)
	enableAutoSchedule(repos, 1, "09:00", "13:00")

	// worker-a 在目标周前三天已各有一个晚班
	weekStart := nextMonday(time.Now(), testLoc)
	for day := 0; day < 3; day++ {
		d := weekStart.AddDate(0, 0, day)
		repos.shift.shifts["pre-"+d.Format("0102")] = &model.Shift{
			ShiftID:   "pre-" + d.Format("0102"),
			WorkerID:  "worker-a",
			StartTime: time.Date(d.Year(), d.Month(), d.Day(), 18, 0, 0, 0, testLoc),
			EndTime:   time.Date(d.Year(), d.Month(), d.Day(), 22, 0, 0, 0, testLoc),
			Status:    model.ShiftStatusPublished,
		}
	}

	result, err := svc.GenerateWeek(context.Background(), "manager-1")
	if err != nil {
		t.Fatalf("GenerateWeek 应成功: %v", err)
	}
	if result.GeneratedCount != 7 {
		t.Fatalf("期望生成 7 个班次，实际=%d", result.GeneratedCount)
	}

	newLoads := map[string]int{}
	for id, sh := range repos.shift.shifts {
		if len(id) >= 4 && id[:4] == "pre-" {
			continue
		}
		newLoads[sh.WorkerID]++
	}
	if newLoads["worker-b"] <= newLoads["worker-a"] {
		t.Errorf("既有负载高的员工应分到更少新班次: a=%d b=%d",
			newLoads["worker-a"], newLoads["worker-b"])
	}
}
