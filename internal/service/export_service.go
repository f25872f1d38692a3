package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workmate/backend/config"
	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoShifts     = errors.New("导出范围内无班次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以周为单位：行按日期、列按岗位序号呈现，供经理打印张贴
//   - ICS 导出为个人班表日历（RFC 5545），供员工订阅到手机日历
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWeekExcel 导出指定周的全员排班表为 Excel
	ExportWeekExcel(ctx context.Context, weekStart time.Time) (*bytes.Buffer, string, error)
	// ExportWorkerICS 导出员工未来班表为 iCalendar
	ExportWorkerICS(ctx context.Context, workerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeekExcel — 导出周排班表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "排班表"
//   - 行头：日期（周一 ~ 周日）
//   - 列头：岗位 1..N（N 为当周单日最大在岗人数）
//   - 单元格：员工姓名 + 班次时间

func (s *exportService) ExportWeekExcel(ctx context.Context, weekStart time.Time) (*bytes.Buffer, string, error) {
	loc := s.cfg.Schedule.Location()
	weekStart = mondayOf(weekStart, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	// 1. 查询当周班次
	shifts, err := s.repo.Shift.ListByRange(ctx, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("查询周班次失败", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	// 2. 按自然日分组并组内按开始时间排序
	byDay := make(map[string][]model.Shift)
	maxSlots := 0
	for _, sh := range shifts {
		key := dayKey(sh.StartTime, loc)
		byDay[key] = append(byDay[key], sh)
	}
	for key := range byDay {
		day := byDay[key]
		sort.Slice(day, func(i, j int) bool { return day[i].StartTime.Before(day[j].StartTime) })
		byDay[key] = day
		if len(day) > maxSlots {
			maxSlots = len(day)
		}
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	for i := 0; i < maxSlots; i++ {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 26)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("排班表（%s 周）", weekStart.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", cell(colName(maxSlots), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "日期")
	for i := 0; i < maxSlots; i++ {
		f.SetCellValue(sheetName, cell(colName(1+i), row), fmt.Sprintf("岗位%d", i+1))
	}

	// 数据行：周一 ~ 周日
	dayNames := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}
	row = 3
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%s %s", date.Format("01-02"), dayNames[day]))

		for i, sh := range byDay[dayKey(date, loc)] {
			name := sh.WorkerID
			if sh.Worker != nil {
				name = sh.Worker.Name
			}
			text := fmt.Sprintf("%s %s-%s", name,
				sh.StartTime.In(loc).Format("15:04"),
				sh.EndTime.In(loc).Format("15:04"))
			f.SetCellValue(sheetName, cell(colName(1+i), row), text)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班表_%s.xlsx", weekStart.Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWorkerICS — 导出个人班表为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 导出范围：今日起 60 天内的班次，每个班次一个 VEVENT，
// UID 取班次 ID 保证重复订阅时日历端可去重更新。

func (s *exportService) ExportWorkerICS(ctx context.Context, workerID string) (*bytes.Buffer, string, error) {
	worker, err := s.repo.Worker.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrWorkerNotFound
		}
		return nil, "", err
	}

	loc := s.cfg.Schedule.Location()
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	shifts, err := s.repo.Shift.ListByWorker(ctx, workerID, from, from.AddDate(0, 0, 60))
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//workmate//shift-calendar//ZH")
	cal.SetName(fmt.Sprintf("%s 的班表", worker.Name))

	for _, sh := range shifts {
		event := cal.AddEvent(sh.ShiftID)
		event.SetCreatedTime(sh.CreatedAt)
		event.SetDtStampTime(sh.UpdatedAt)
		event.SetStartAt(sh.StartTime)
		event.SetEndAt(sh.EndTime)
		summary := "值班"
		if sh.Type == model.ShiftTypeOvertime {
			summary = "加班"
		}
		event.SetSummary(summary)
		if sh.Note != "" {
			event.SetDescription(sh.Note)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("班表_%s.ics", worker.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
