package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"workmate/backend/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(testConfig(), repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestExportService_ExportWeekExcel_NoShifts(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportWeekExcel(context.Background(), time.Now())
	if !errors.Is(err, ErrExportNoShifts) {
		t.Fatalf("期望 ErrExportNoShifts，实际=%v", err)
	}
}

func TestExportService_ExportWeekExcel(t *testing.T) {
	svc, repos := setupTestExportService()

	weekStart := nextMonday(time.Now(), testLoc)
	worker := &model.Worker{WorkerID: "worker-1", Name: "张三", IsActive: true}
	repos.worker.workers["worker-1"] = worker
	for day := 0; day < 3; day++ {
		d := weekStart.AddDate(0, 0, day)
		id := "shift-" + d.Format("0102")
		repos.shift.shifts[id] = &model.Shift{
			ShiftID:   id,
			WorkerID:  "worker-1",
			Worker:    worker,
			StartTime: time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, testLoc),
			EndTime:   time.Date(d.Year(), d.Month(), d.Day(), 17, 0, 0, 0, testLoc),
			Status:    model.ShiftStatusPublished,
		}
	}

	buf, filename, err := svc.ExportWeekExcel(context.Background(), weekStart)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应为 xlsx，实际=%s", filename)
	}
}

func TestExportService_ExportWorkerICS(t *testing.T) {
	svc, repos := setupTestExportService()

	repos.worker.workers["worker-1"] = &model.Worker{
		WorkerID: "worker-1", Name: "张三", IsActive: true,
	}
	start := futureShiftStart()
	repos.shift.shifts["shift-1"] = &model.Shift{
		ShiftID:   "shift-1",
		WorkerID:  "worker-1",
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
		Type:      model.ShiftTypeRegular,
		Status:    model.ShiftStatusPublished,
		Note:      "门店开业支援",
	}

	buf, filename, err := svc.ExportWorkerICS(context.Background(), "worker-1")
	if err != nil {
		t.Fatalf("导出 ICS 应成功: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("输出应为合法的 iCalendar 内容")
	}
	if !strings.Contains(content, "shift-1") {
		t.Error("VEVENT 的 UID 应为班次 ID")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应为 ics，实际=%s", filename)
	}
}

func TestExportService_ExportWorkerICS_UnknownWorker(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportWorkerICS(context.Background(), "missing")
	if !errors.Is(err, ErrWorkerNotFound) {
		t.Fatalf("期望 ErrWorkerNotFound，实际=%v", err)
	}
}
