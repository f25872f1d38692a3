package model

// 员工角色
const (
	RoleWorker  = "worker"
	RoleManager = "manager"
)

// Worker 员工表 — 对应 workers
// IsActive 为在职标记，离职员工不参与排班与换班
type Worker struct {
	WorkerID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"worker_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role           string `gorm:"type:varchar(20);not null;default:'worker'"     json:"role"` // worker | manager
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	MaxWeeklyHours int    `gorm:"not null;default:40"                            json:"max_weekly_hours"` // 每周工时上限（小时）
	VersionedModel
}

// TableName 指定表名
func (Worker) TableName() string { return "workers" }
