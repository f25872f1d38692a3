package dto

// ── 自动排班模块 DTO ──

// GenerateWeekResponse 自动排班结果响应
// Disabled 为 true 时表示自动排班未启用，本轮为空操作而非错误
type GenerateWeekResponse struct {
	Disabled       bool     `json:"disabled"`
	Message        string   `json:"message,omitempty"`
	WeekStart      string   `json:"week_start,omitempty"` // 目标周首日（YYYY-MM-DD）
	GeneratedCount int      `json:"generated_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// AutomationConfigResponse 自动排班配置响应
type AutomationConfigResponse struct {
	AutoScheduleEnabled bool   `json:"auto_schedule_enabled"`
	MinStaffPerShift    int    `json:"min_staff_per_shift"`
	OperatingHoursStart string `json:"operating_hours_start"`
	OperatingHoursEnd   string `json:"operating_hours_end"`
	MinRestHours        int    `json:"min_rest_hours"`
	UpdatedAt           string `json:"updated_at"`
}

// UpdateAutomationConfigRequest 更新自动排班配置请求
type UpdateAutomationConfigRequest struct {
	AutoScheduleEnabled *bool   `json:"auto_schedule_enabled"`
	MinStaffPerShift    *int    `json:"min_staff_per_shift"    binding:"omitempty,min=1,max=50"`
	OperatingHoursStart *string `json:"operating_hours_start"`
	OperatingHoursEnd   *string `json:"operating_hours_end"`
	MinRestHours        *int    `json:"min_rest_hours"         binding:"omitempty,min=0,max=24"`
}
