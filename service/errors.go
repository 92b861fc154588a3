package service

import (
	"fmt"

	"genset/store"
)

// 存储层错误直接透出，便于 errors.Is 判断
var (
	ErrNotFound  = store.ErrNotFound
	ErrDuplicate = store.ErrDuplicate
	ErrInUse     = store.ErrInUse
)

// ValidationError 请求参数不合法（缺少必填字段等）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
