package service

import (
	"fmt"
	"time"

	"workmate/backend/internal/model"
)

// ── 排班约束校验器 ──
//
// 校验器是纯函数：只依赖入参，不访问存储，可被排班与换班并发复用。
// 约束不满足不是错误，而是一等结果（Valid=false + 原因），
// 输入不一致（如员工缺失）同样以 Valid=false 表达，绝不 panic 或返回 error。

// ValidationResult 约束校验结果
type ValidationResult struct {
	Valid  bool
	Reason string // Valid=false 时携带第一条未通过的原因
}

// AssignmentCheck 单次"员工持有某时间窗"的校验输入
type AssignmentCheck struct {
	Worker        *model.Worker
	ProposedStart time.Time
	ProposedEnd   time.Time
	// ExistingShifts 该员工已持有的班次；判定时自动剔除 ExcludeShiftID（换班场景下被转出的班次）
	ExistingShifts []model.Shift
	ExcludeShiftID string
	// MinRestHours 相邻班次最小休息间隔（小时），0 表示不启用
	MinRestHours int
	// Location 排班时区，"同一自然日"与 ISO 周均按该时区判定
	Location *time.Location
}

// ValidateAssignment 按固定顺序执行约束检查，遇到第一条不满足即返回：
//
//  1. 同日不可重复持班
//  2. ISO 周工时不得超过员工上限
//  3. 相邻班次休息间隔（可选扩展规则）
func ValidateAssignment(chk AssignmentCheck) ValidationResult {
	loc := chk.Location
	if loc == nil {
		loc = time.Local
	}

	if chk.Worker == nil {
		return ValidationResult{Valid: false, Reason: "员工不存在"}
	}
	if !chk.Worker.IsActive {
		return ValidationResult{Valid: false, Reason: "员工已离职，不可持有班次"}
	}
	if !chk.ProposedEnd.After(chk.ProposedStart) {
		return ValidationResult{Valid: false, Reason: "班次时间窗无效"}
	}

	// 1. 同日双排检测
	for _, sh := range chk.ExistingShifts {
		if sh.ShiftID != "" && sh.ShiftID == chk.ExcludeShiftID {
			continue
		}
		if sameCalendarDay(sh.StartTime, chk.ProposedStart, loc) {
			return ValidationResult{
				Valid:  false,
				Reason: fmt.Sprintf("%s 已有班次，同日不可重复排班", chk.ProposedStart.In(loc).Format("2006-01-02")),
			}
		}
	}

	// 2. 周工时上限检测（按 ISO 周汇总）
	proposedWeek := isoWeekKey(chk.ProposedStart, loc)
	total := chk.ProposedEnd.Sub(chk.ProposedStart)
	for _, sh := range chk.ExistingShifts {
		if sh.ShiftID != "" && sh.ShiftID == chk.ExcludeShiftID {
			continue
		}
		if isoWeekKey(sh.StartTime, loc) == proposedWeek {
			total += sh.EndTime.Sub(sh.StartTime)
		}
	}
	ceiling := time.Duration(chk.Worker.MaxWeeklyHours) * time.Hour
	if total > ceiling {
		return ValidationResult{
			Valid: false,
			Reason: fmt.Sprintf("超出周工时上限：本周累计 %.1f 小时，上限 %d 小时",
				total.Hours(), chk.Worker.MaxWeeklyHours),
		}
	}

	// 3. 休息间隔检测（扩展规则，MinRestHours=0 时跳过）
	if chk.MinRestHours > 0 {
		rest := time.Duration(chk.MinRestHours) * time.Hour
		for _, sh := range chk.ExistingShifts {
			if sh.ShiftID != "" && sh.ShiftID == chk.ExcludeShiftID {
				continue
			}
			if !chk.ProposedStart.Before(sh.EndTime) && chk.ProposedStart.Sub(sh.EndTime) < rest {
				return ValidationResult{Valid: false, Reason: fmt.Sprintf("与前一班次间隔不足 %d 小时", chk.MinRestHours)}
			}
			if !sh.StartTime.Before(chk.ProposedEnd) && sh.StartTime.Sub(chk.ProposedEnd) < rest {
				return ValidationResult{Valid: false, Reason: fmt.Sprintf("与后一班次间隔不足 %d 小时", chk.MinRestHours)}
			}
		}
	}

	return ValidationResult{Valid: true}
}

// sameCalendarDay 两个时刻在排班时区内是否落在同一自然日
func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// isoWeekKey 时刻所在的 ISO 周标识，如 "2026-W35"
func isoWeekKey(t time.Time, loc *time.Location) string {
	year, week := t.In(loc).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// dayKey 时刻所在自然日标识，如 "2026-08-31"
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
