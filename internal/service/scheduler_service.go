package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"workmate/backend/config"
	"workmate/backend/internal/dto"
	"workmate/backend/internal/model"
	"workmate/backend/internal/repository"
)

var ErrMalformedOperatingHours = errors.New("营业时间配置格式错误")

// SchedulerService 自动排班服务
type SchedulerService interface {
	GenerateWeek(ctx context.Context, operatorID string) (*dto.GenerateWeekResponse, error)
}

type schedulerService struct {
	cfg    *config.Config
	repo   *repository.Repository
	seed   func() int64
	logger *zap.Logger
}

// NewSchedulerService 创建自动排班服务
// seed 为 nil 时按当前时间播种；测试注入固定种子可获得可复现的排班结果
func NewSchedulerService(cfg *config.Config, repo *repository.Repository, seed func() int64, logger *zap.Logger) SchedulerService {
	if seed == nil {
		seed = func() int64 { return time.Now().UnixNano() }
	}
	return &schedulerService{cfg: cfg, repo: repo, seed: seed, logger: logger}
}

// candidate 排班候选人：员工 + 本周已有与拟分配班次的合并视图
type candidate struct {
	worker   *model.Worker
	load     int           // 目标周内班次数（已提交 + 本轮拟分配）
	existing []model.Shift // 已提交班次（含目标周邻域）
	proposed []model.Shift // 本轮拟分配班次
}

// GenerateWeek 为下一个自然周生成排班
//
// 目标周为运行日之后最近的周一起始的七天。逐日逐岗位贪心分配：
// 候选人先洗牌再按负载稳定排序，保证同负载者被等概率选中；
// 可用性判定复用约束校验器，已提交与本轮拟分配的班次合并参与判定。
// 某日凑不齐 MinStaffPerShift 人时记录告警并继续，不中断整周生成。
func (s *schedulerService) GenerateWeek(ctx context.Context, operatorID string) (*dto.GenerateWeekResponse, error) {
	autoCfg, err := s.repo.AutomationConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !autoCfg.AutoScheduleEnabled {
		return &dto.GenerateWeekResponse{
			Disabled: true,
			Message:  "自动排班未启用，本轮跳过",
		}, nil
	}

	loc := s.cfg.Schedule.Location()
	startClock, err := parseClock(autoCfg.OperatingHoursStart)
	if err != nil {
		return nil, fmt.Errorf("%w: operating_hours_start=%q", ErrMalformedOperatingHours, autoCfg.OperatingHoursStart)
	}
	endClock, err := parseClock(autoCfg.OperatingHoursEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: operating_hours_end=%q", ErrMalformedOperatingHours, autoCfg.OperatingHoursEnd)
	}
	if !endClock.after(startClock) {
		return nil, fmt.Errorf("%w: 结束时间必须晚于开始时间", ErrMalformedOperatingHours)
	}

	// 目标周：运行日之后最近的周一
	weekStart := nextMonday(time.Now(), loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	// 候选池：在职员工 + 目标周邻域的既有班表（负载计数与约束判定共用）
	workers, err := s.repo.Worker.ListEligible(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]*candidate, 0, len(workers))
	for i := range workers {
		existing, err := s.repo.Shift.ListByWorker(ctx, workers[i].WorkerID,
			weekStart.AddDate(0, 0, -2), weekEnd.AddDate(0, 0, 2))
		if err != nil {
			return nil, err
		}
		c := &candidate{worker: &workers[i], existing: existing}
		for j := range existing {
			if !existing[j].StartTime.Before(weekStart) && existing[j].StartTime.Before(weekEnd) {
				c.load++
			}
		}
		candidates = append(candidates, c)
	}

	rng := rand.New(rand.NewSource(s.seed()))
	var (
		generated []model.Shift
		warnings  []string
	)

	for day := 0; day < 7; day++ {
		dayStart := weekStart.AddDate(0, 0, day)
		shiftStart := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), startClock.hour, startClock.minute, 0, 0, loc)
		shiftEnd := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), endClock.hour, endClock.minute, 0, 0, loc)

		assigned := 0
		for slot := 0; slot < autoCfg.MinStaffPerShift; slot++ {
			picked := s.pickCandidate(rng, candidates, shiftStart, shiftEnd, autoCfg.MinRestHours, loc)
			if picked == nil {
				break
			}
			shift := model.Shift{
				WorkerID:  picked.worker.WorkerID,
				StartTime: shiftStart,
				EndTime:   shiftEnd,
				Type:      model.ShiftTypeRegular,
				Status:    model.ShiftStatusPublished,
			}
			shift.CreatedBy = &operatorID
			generated = append(generated, shift)
			picked.proposed = append(picked.proposed, shift)
			picked.load++
			assigned++
		}
		if assigned < autoCfg.MinStaffPerShift {
			warnings = append(warnings, fmt.Sprintf(
				"%s 人手不足：需要 %d 人，仅排入 %d 人",
				dayStart.Format("2006-01-02"), autoCfg.MinStaffPerShift, assigned))
		}
	}

	if len(generated) > 0 {
		err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
			return txRepo.Shift.BatchCreate(ctx, generated)
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("自动排班完成",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("generated", len(generated)),
		zap.Int("warnings", len(warnings)),
		zap.String("operator_id", operatorID))

	return &dto.GenerateWeekResponse{
		WeekStart:      weekStart.Format("2006-01-02"),
		GeneratedCount: len(generated),
		Warnings:       warnings,
	}, nil
}

// pickCandidate 在可用候选人中选出负载最低者
// 先 Fisher-Yates 洗牌再按负载稳定排序，同负载者等概率当选
func (s *schedulerService) pickCandidate(rng *rand.Rand, candidates []*candidate, start, end time.Time, minRestHours int, loc *time.Location) *candidate {
	pool := make([]*candidate, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].load < pool[j].load })

	for _, c := range pool {
		merged := make([]model.Shift, 0, len(c.existing)+len(c.proposed))
		merged = append(merged, c.existing...)
		merged = append(merged, c.proposed...)
		result := ValidateAssignment(AssignmentCheck{
			Worker:         c.worker,
			ProposedStart:  start,
			ProposedEnd:    end,
			ExistingShifts: merged,
			MinRestHours:   minRestHours,
			Location:       loc,
		})
		if result.Valid {
			return c
		}
	}
	return nil
}

// clock 一天内的时分
type clock struct {
	hour, minute int
}

func (c clock) after(o clock) bool {
	return c.hour*60+c.minute > o.hour*60+o.minute
}

// parseClock 解析 "HH:MM" 格式的营业时间
func parseClock(s string) (clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return clock{}, err
	}
	return clock{hour: t.Hour(), minute: t.Minute()}, nil
}

// nextMonday 严格晚于 t 的下一个周一零点（排班时区）
func nextMonday(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	day := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	offset := (8 - int(lt.Weekday())) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
