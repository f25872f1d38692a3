package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：班次或申请单已被其他操作抢先修改
var ErrOptimisticLock = errors.New("记录已被其他操作修改，请重试")
