package model

import "time"

// 班次类型
const (
	ShiftTypeRegular  = "regular"
	ShiftTypeOvertime = "overtime"
)

// 班次状态
const (
	ShiftStatusDraft     = "draft"
	ShiftStatusPublished = "published"
)

// Shift 班次表 — 对应 shifts
// Note 为追加式转移备注，仅供人读，不做任何解析
type Shift struct {
	ShiftID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	WorkerID  string    `gorm:"type:uuid;not null"                             json:"worker_id"`
	StartTime time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime   time.Time `gorm:"not null"                                       json:"end_time"` // 恒晚于 StartTime（DB CHECK 约束）
	Type      string    `gorm:"type:varchar(20);not null;default:'regular'"    json:"type"`     // regular | overtime
	Status    string    `gorm:"type:varchar(20);not null;default:'published'"  json:"status"`   // draft | published
	Note      string    `gorm:"type:text;not null;default:''"                  json:"note,omitempty"`
	VersionedModel

	// 关联
	Worker *Worker `gorm:"foreignKey:WorkerID;references:WorkerID" json:"worker,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// 转移方式
const (
	TransferTypeAuto   = "auto"   // 换班申请通过约束校验自动批准
	TransferTypeManual = "manual" // 经理人工批准
)

// ShiftTransferLog 班次转移日志表 — 对应 shift_transfer_logs（结构化审计，纯追加）
type ShiftTransferLog struct {
	TransferLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"transfer_log_id"`
	ShiftID       string    `gorm:"type:uuid;not null"                             json:"shift_id"`
	SwapRequestID string    `gorm:"type:uuid;not null"                             json:"swap_request_id"`
	FromWorkerID  string    `gorm:"type:uuid;not null"                             json:"from_worker_id"`
	ToWorkerID    string    `gorm:"type:uuid;not null"                             json:"to_worker_id"`
	TransferType  string    `gorm:"type:varchar(20);not null"                      json:"transfer_type"` // auto | manual
	OperatorID    string    `gorm:"type:uuid;not null"                             json:"operator_id"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ShiftTransferLog) TableName() string { return "shift_transfer_logs" }
