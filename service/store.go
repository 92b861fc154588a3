package service

import (
	"context"

	"genset/models"
	"genset/store"
)

// GensetStore 发电机组存储
type GensetStore interface {
	ListGensets(ctx context.Context) ([]models.Genset, error)
	GetGenset(ctx context.Context, id string) (models.Genset, error)
	CreateGenset(ctx context.Context, name string) (models.Genset, error)
	FindOrCreateGenset(ctx context.Context, name string) (models.Genset, bool, error)
	DeleteGenset(ctx context.Context, id string) error
}

// HistoryStore 维护记录存储
type HistoryStore interface {
	ListHistories(ctx context.Context, filter store.HistoryFilter) ([]models.History, error)
	GetHistory(ctx context.Context, id string) (models.History, error)
	CreateHistory(ctx context.Context, h *models.History) error
	CreateHistories(ctx context.Context, list []models.History) error
	UpdateHistory(ctx context.Context, id string, upd store.HistoryUpdate) (models.History, error)
	DeleteHistory(ctx context.Context, id string) error
	CountHistories(ctx context.Context) (int64, error)
}

// Store 服务层依赖的全部存储操作，*store.Store 即实现
type Store interface {
	GensetStore
	HistoryStore
}

var _ Store = (*store.Store)(nil)
