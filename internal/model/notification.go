package model

// 通知类型
const (
	NotifySwapCreated      = "swap_created"
	NotifySwapAutoApproved = "swap_auto_approved"
	NotifySwapPending      = "swap_pending"
	NotifySwapApproved     = "swap_approved"
	NotifySwapRejected     = "swap_rejected"
)

// Notification 通知消息表 — 对应 notifications
// 仅负责落库，推送渠道由外部投递系统消费，不影响核心流程
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	WorkerID       string  `gorm:"type:uuid;not null"                             json:"worker_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	SwapRequestID  *string `gorm:"type:uuid"                                      json:"swap_request_id,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
