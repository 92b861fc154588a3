package store

import (
	"context"
	"errors"

	"genset/models"
)

// ListGensets 按名称升序返回全部发电机组
func (s *Store) ListGensets(ctx context.Context) ([]models.Genset, error) {
	var list []models.Genset
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "list gensets")
	}
	return list, nil
}

// GetGenset 按 ID 查询
func (s *Store) GetGenset(ctx context.Context, id string) (models.Genset, error) {
	var g models.Genset
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	return g, translate(err, "get genset")
}

// FindGensetByName 按名称精确查询
func (s *Store) FindGensetByName(ctx context.Context, name string) (models.Genset, error) {
	var g models.Genset
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&g).Error
	return g, translate(err, "find genset")
}

// CreateGenset 创建发电机组，名称已存在时返回 ErrDuplicate
func (s *Store) CreateGenset(ctx context.Context, name string) (models.Genset, error) {
	if _, err := s.FindGensetByName(ctx, name); err == nil {
		return models.Genset{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return models.Genset{}, err
	}

	g := models.Genset{Name: name}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return models.Genset{}, translate(err, "create genset")
	}
	return g, nil
}

// FindOrCreateGenset 按名称查找，不存在则创建；created 表示是否新建
func (s *Store) FindOrCreateGenset(ctx context.Context, name string) (g models.Genset, created bool, err error) {
	g, err = s.FindGensetByName(ctx, name)
	if err == nil {
		return g, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return g, false, err
	}

	g, err = s.CreateGenset(ctx, name)
	if errors.Is(err, ErrDuplicate) {
		// 并发导入时可能已被他人创建
		g, err = s.FindGensetByName(ctx, name)
		return g, false, err
	}
	if err != nil {
		return g, false, err
	}
	return g, true, nil
}

// DeleteGenset 删除发电机组；仍有维护记录引用时返回 ErrInUse
func (s *Store) DeleteGenset(ctx context.Context, id string) error {
	db := s.db.WithContext(ctx)

	var refs int64
	if err := db.Model(&models.History{}).Where("genset_id = ?", id).Count(&refs).Error; err != nil {
		return translate(err, "count genset histories")
	}
	if refs > 0 {
		return ErrInUse
	}

	res := db.Where("id = ?", id).Delete(&models.Genset{})
	if res.Error != nil {
		return translate(res.Error, "delete genset")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
