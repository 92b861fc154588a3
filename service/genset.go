package service

import (
	"context"
	"strings"

	"genset/models"
)

// GensetService 发电机组管理
type GensetService struct {
	store GensetStore
}

// NewGensetService 创建发电机组服务
func NewGensetService(s GensetStore) *GensetService {
	return &GensetService{store: s}
}

// List 按名称升序
func (s *GensetService) List(ctx context.Context) ([]models.Genset, error) {
	return s.store.ListGensets(ctx)
}

// Create 名称必填且唯一
func (s *GensetService) Create(ctx context.Context, name string) (models.Genset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Genset{}, invalid("name is required")
	}
	return s.store.CreateGenset(ctx, name)
}

// Delete 仍有维护记录时拒绝删除
func (s *GensetService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteGenset(ctx, id)
}
