package model

// AutomationConfig 自动排班配置表 — 对应 automation_config（单行强类型）
// OperatingHoursStart/End 为墙钟时间 "HH:MM"，解析失败视为配置错误，排班整轮中止
type AutomationConfig struct {
	Singleton           bool   `gorm:"primaryKey;default:true"                 json:"-"`
	AutoScheduleEnabled bool   `gorm:"not null;default:false"                  json:"auto_schedule_enabled"`
	MinStaffPerShift    int    `gorm:"not null;default:2"                      json:"min_staff_per_shift"`
	OperatingHoursStart string `gorm:"type:varchar(5);not null;default:'09:00'" json:"operating_hours_start"`
	OperatingHoursEnd   string `gorm:"type:varchar(5);not null;default:'18:00'" json:"operating_hours_end"`
	MinRestHours        int    `gorm:"not null;default:0"                      json:"min_rest_hours"` // 0 表示不启用休息间隔规则
	BaseModel
}

// TableName 指定表名
func (AutomationConfig) TableName() string { return "automation_config" }
