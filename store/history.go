package store

import (
	"context"
	"strings"

	"genset/models"

	"gorm.io/datatypes"
)

// HistoryFilter 维护记录查询条件，零值表示不过滤
type HistoryFilter struct {
	GensetID string
	Search   string
}

// HistoryUpdate 维护记录全量更新字段
type HistoryUpdate struct {
	Date        datatypes.Date
	Description string
	Notes       *string
	GensetID    string
}

// likeEscape LIKE 的转义字符，mysql / postgres / sqlite 通用
const likeEscape = "!"

// escapeLikeValue 转义 LIKE 通配符，避免用户输入被当作模式
func escapeLikeValue(s string) string {
	s = strings.ReplaceAll(s, likeEscape, likeEscape+likeEscape)
	s = strings.ReplaceAll(s, "%", likeEscape+"%")
	s = strings.ReplaceAll(s, "_", likeEscape+"_")
	return s
}

// ListHistories 按日期升序返回维护记录（含所属发电机组）
func (s *Store) ListHistories(ctx context.Context, filter HistoryFilter) ([]models.History, error) {
	query := s.db.WithContext(ctx).
		Model(&models.History{}).
		Select("histories.*").
		Joins("JOIN gensets ON gensets.id = histories.genset_id").
		Preload("Genset")

	if filter.GensetID != "" {
		query = query.Where("histories.genset_id = ?", filter.GensetID)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLikeValue(filter.Search) + "%"
		query = query.Where(
			"histories.description LIKE ? ESCAPE '"+likeEscape+"' OR histories.notes LIKE ? ESCAPE '"+likeEscape+"' OR gensets.name LIKE ? ESCAPE '"+likeEscape+"'",
			pattern, pattern, pattern,
		)
	}

	var list []models.History
	if err := query.Order("histories.date ASC, histories.created_at ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "list histories")
	}
	return list, nil
}

// GetHistory 按 ID 查询（含所属发电机组）
func (s *Store) GetHistory(ctx context.Context, id string) (models.History, error) {
	var h models.History
	err := s.db.WithContext(ctx).Preload("Genset").Where("id = ?", id).First(&h).Error
	return h, translate(err, "get history")
}

// CreateHistory 新增单条记录
func (s *Store) CreateHistory(ctx context.Context, h *models.History) error {
	return translate(s.db.WithContext(ctx).Omit("Genset").Create(h).Error, "create history")
}

// CreateHistories 批量新增，gorm 默认事务保证整批要么全部写入要么全部回滚
func (s *Store) CreateHistories(ctx context.Context, list []models.History) error {
	if len(list) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).Omit("Genset").Create(&list).Error, "create histories")
}

// UpdateHistory 全量替换可变字段
func (s *Store) UpdateHistory(ctx context.Context, id string, upd HistoryUpdate) (models.History, error) {
	db := s.db.WithContext(ctx)

	var h models.History
	if err := db.Where("id = ?", id).First(&h).Error; err != nil {
		return h, translate(err, "get history")
	}

	updates := map[string]interface{}{
		"date":        upd.Date,
		"description": upd.Description,
		"notes":       upd.Notes,
		"genset_id":   upd.GensetID,
	}
	if err := db.Model(&h).Updates(updates).Error; err != nil {
		return h, translate(err, "update history")
	}

	return s.GetHistory(ctx, id)
}

// DeleteHistory 删除记录，不存在时返回 ErrNotFound
func (s *Store) DeleteHistory(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.History{})
	if res.Error != nil {
		return translate(res.Error, "delete history")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountHistories 统计记录数
func (s *Store) CountHistories(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.History{}).Count(&n).Error
	return n, translate(err, "count histories")
}
