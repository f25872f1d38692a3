package model

// 换班申请状态机：
//
//	open → pending_approval → approved | rejected
//	open → approved（约束校验通过时自动批准）
//	open → rejected（经理撤回）
//
// approved / rejected 为终态
const (
	SwapStatusOpen            = "open"
	SwapStatusPendingApproval = "pending_approval"
	SwapStatusApproved        = "approved"
	SwapStatusRejected        = "rejected"
)

// SwapRequest 换班申请表 — 对应 swap_requests
// 同一班次最多存在一个活跃（open / pending_approval）申请，由部分唯一索引兜底
type SwapRequest struct {
	SwapRequestID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	ShiftID        string  `gorm:"type:uuid;not null"                             json:"shift_id"`
	RequesterID    string  `gorm:"type:uuid;not null"                             json:"requester_id"`
	ClaimantID     *string `gorm:"type:uuid"                                      json:"claimant_id,omitempty"` // 认领前为空
	Status         string  `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Reason         string  `gorm:"type:varchar(500)"                              json:"reason,omitempty"`          // 发起人填写
	DecisionReason string  `gorm:"type:varchar(500)"                              json:"decision_reason,omitempty"` // 校验器/经理给出的判定说明
	ApprovedBy     *string `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	VersionedModel

	// 关联
	Shift     *Shift  `gorm:"foreignKey:ShiftID;references:ShiftID"       json:"shift,omitempty"`
	Requester *Worker `gorm:"foreignKey:RequesterID;references:WorkerID"  json:"requester,omitempty"`
	Claimant  *Worker `gorm:"foreignKey:ClaimantID;references:WorkerID"   json:"claimant,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }

// IsActive 是否处于活跃状态（占用班次的换班名额）
func (r *SwapRequest) IsActive() bool {
	return r.Status == SwapStatusOpen || r.Status == SwapStatusPendingApproval
}
