package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"genset/models"
	"genset/store"
)

// AllUnits 请求中表示“全部发电机组”的取值，只在 API 边界解析
const AllUnits = "all"

// UnitSelection 记录关联的发电机组：全部，或指定 ID 列表
type UnitSelection struct {
	All bool
	IDs []string
}

// ParseUnitSelection 兼容两种写法：mode="all"，或 unitIds 中包含 "all"
func ParseUnitSelection(mode string, ids []string) UnitSelection {
	if strings.EqualFold(strings.TrimSpace(mode), AllUnits) {
		return UnitSelection{All: true}
	}
	for _, id := range ids {
		if id == AllUnits {
			return UnitSelection{All: true}
		}
	}
	return UnitSelection{IDs: ids}
}

// Empty 未选择任何发电机组
func (u UnitSelection) Empty() bool {
	return !u.All && len(u.IDs) == 0
}

// ListFilter 列表筛选，GensetID 为空或 "all" 表示不按机组过滤
type ListFilter struct {
	Search   string
	GensetID string
}

// Filtered 是否带任何筛选条件
func (f ListFilter) Filtered() bool {
	return f.unitID() != "" || f.Search != ""
}

func (f ListFilter) unitID() string {
	if f.GensetID == AllUnits {
		return ""
	}
	return f.GensetID
}

// HistoryInput 新增/更新维护记录的字段
type HistoryInput struct {
	Date        time.Time
	Description string
	Notes       string
	Units       UnitSelection
}

func (in HistoryInput) validate() error {
	if in.Date.IsZero() || strings.TrimSpace(in.Description) == "" || in.Units.Empty() {
		return invalid("date, description, and unitIds are required")
	}
	return nil
}

// HistoryService 维护记录的增删改查
type HistoryService struct {
	store Store
}

// NewHistoryService 创建维护记录服务
func NewHistoryService(s Store) *HistoryService {
	return &HistoryService{store: s}
}

// List 返回按日期升序的记录；关键字在 描述/备注/机组名称 中任意一处出现即命中（区分大小写）
func (s *HistoryService) List(ctx context.Context, f ListFilter) ([]models.History, error) {
	list, err := s.store.ListHistories(ctx, store.HistoryFilter{
		GensetID: f.unitID(),
		Search:   f.Search,
	})
	if err != nil {
		return nil, err
	}
	if f.Search == "" {
		return list, nil
	}

	// 数据库 LIKE 的大小写规则随排序规则变化，这里统一按区分大小写再过滤一次
	matched := list[:0]
	for _, h := range list {
		if matchesSearch(h, f.Search) {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

func matchesSearch(h models.History, term string) bool {
	return strings.Contains(h.Description, term) ||
		strings.Contains(h.NotesText(), term) ||
		strings.Contains(h.Genset.Name, term)
}

// Create 为每个选中的机组各新增一条记录，选择“全部”时以执行时刻的机组列表为准
// 整批在一个事务内写入
func (s *HistoryService) Create(ctx context.Context, in HistoryInput) ([]models.History, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	gensets, err := s.resolveUnits(ctx, in.Units)
	if err != nil {
		return nil, err
	}

	date := models.NewDate(in.Date)
	list := make([]models.History, 0, len(gensets))
	for _, g := range gensets {
		list = append(list, models.History{
			Date:        date,
			Description: in.Description,
			Notes:       models.NotesPtr(in.Notes),
			GensetID:    g.ID,
		})
	}

	if err := s.store.CreateHistories(ctx, list); err != nil {
		return nil, err
	}
	historiesCreated.Add(float64(len(list)))
	for i := range list {
		list[i].Genset = gensets[i]
	}
	return list, nil
}

func (s *HistoryService) resolveUnits(ctx context.Context, sel UnitSelection) ([]models.Genset, error) {
	if sel.All {
		return s.store.ListGensets(ctx)
	}

	gensets := make([]models.Genset, 0, len(sel.IDs))
	for _, id := range sel.IDs {
		g, err := s.lookupUnit(ctx, id)
		if err != nil {
			return nil, err
		}
		gensets = append(gensets, g)
	}
	return gensets, nil
}

func (s *HistoryService) lookupUnit(ctx context.Context, id string) (models.Genset, error) {
	g, err := s.store.GetGenset(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return g, invalid("unknown unit id %q", id)
	}
	return g, err
}

// Update 全量更新；只采用第一个机组 ID，单条记录不会扩散到多个机组
func (s *HistoryService) Update(ctx context.Context, id string, in HistoryInput) (models.History, error) {
	if err := in.validate(); err != nil {
		return models.History{}, err
	}
	if in.Units.All {
		return models.History{}, invalid("update requires a specific unit id")
	}

	g, err := s.lookupUnit(ctx, in.Units.IDs[0])
	if err != nil {
		return models.History{}, err
	}

	return s.store.UpdateHistory(ctx, id, store.HistoryUpdate{
		Date:        models.NewDate(in.Date),
		Description: in.Description,
		Notes:       models.NotesPtr(in.Notes),
		GensetID:    g.ID,
	})
}

// Delete 删除记录
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteHistory(ctx, id)
}
