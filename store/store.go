// Package store 维护记录与发电机组的持久化
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一键冲突
	ErrDuplicate = errors.New("record already exists")
	// ErrInUse 仍被其他记录引用
	ErrInUse = errors.New("record is still referenced")
)

// Store 基于 gorm 的记录存储
type Store struct {
	db *gorm.DB
}

// New 创建存储
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate 把 gorm 错误映射为存储层错误
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInUse
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
