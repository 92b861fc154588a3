package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"genset/models"
	"genset/store"

	"github.com/google/uuid"
)

// stubStore 内存实现；搜索按不区分大小写匹配，模拟 mysql 默认排序规则下的 LIKE
type stubStore struct {
	gensets   []models.Genset
	histories []models.History
	seq       int

	failCreateHistory error
}

var _ Store = (*stubStore)(nil)

func newStubStore(names ...string) *stubStore {
	s := &stubStore{}
	for _, name := range names {
		_, _ = s.CreateGenset(context.Background(), name)
	}
	return s
}

func (s *stubStore) genset(name string) models.Genset {
	for _, g := range s.gensets {
		if g.Name == name {
			return g
		}
	}
	return models.Genset{}
}

func (s *stubStore) ListGensets(ctx context.Context) ([]models.Genset, error) {
	list := append([]models.Genset(nil), s.gensets...)
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (s *stubStore) GetGenset(ctx context.Context, id string) (models.Genset, error) {
	for _, g := range s.gensets {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Genset{}, store.ErrNotFound
}

func (s *stubStore) CreateGenset(ctx context.Context, name string) (models.Genset, error) {
	if s.genset(name).ID != "" {
		return models.Genset{}, store.ErrDuplicate
	}
	g := models.Genset{ID: uuid.NewString(), Name: name}
	s.gensets = append(s.gensets, g)
	return g, nil
}

func (s *stubStore) FindOrCreateGenset(ctx context.Context, name string) (models.Genset, bool, error) {
	if g := s.genset(name); g.ID != "" {
		return g, false, nil
	}
	g, err := s.CreateGenset(ctx, name)
	return g, err == nil, err
}

func (s *stubStore) DeleteGenset(ctx context.Context, id string) error {
	for _, h := range s.histories {
		if h.GensetID == id {
			return store.ErrInUse
		}
	}
	for i, g := range s.gensets {
		if g.ID == id {
			s.gensets = append(s.gensets[:i], s.gensets[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *stubStore) withGenset(h models.History) models.History {
	h.Genset, _ = s.GetGenset(context.Background(), h.GensetID)
	return h
}

func (s *stubStore) ListHistories(ctx context.Context, f store.HistoryFilter) ([]models.History, error) {
	term := strings.ToLower(f.Search)
	var list []models.History
	for _, h := range s.histories {
		h = s.withGenset(h)
		if f.GensetID != "" && h.GensetID != f.GensetID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(h.Description), term) &&
			!strings.Contains(strings.ToLower(h.NotesText()), term) &&
			!strings.Contains(strings.ToLower(h.Genset.Name), term) {
			continue
		}
		list = append(list, h)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return time.Time(list[i].Date).Before(time.Time(list[j].Date))
	})
	return list, nil
}

func (s *stubStore) GetHistory(ctx context.Context, id string) (models.History, error) {
	for _, h := range s.histories {
		if h.ID == id {
			return s.withGenset(h), nil
		}
	}
	return models.History{}, store.ErrNotFound
}

func (s *stubStore) CreateHistory(ctx context.Context, h *models.History) error {
	if s.failCreateHistory != nil {
		return s.failCreateHistory
	}
	s.seq++
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	s.histories = append(s.histories, *h)
	return nil
}

func (s *stubStore) CreateHistories(ctx context.Context, list []models.History) error {
	for i := range list {
		if err := s.CreateHistory(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubStore) UpdateHistory(ctx context.Context, id string, upd store.HistoryUpdate) (models.History, error) {
	for i, h := range s.histories {
		if h.ID == id {
			h.Date = upd.Date
			h.Description = upd.Description
			h.Notes = upd.Notes
			h.GensetID = upd.GensetID
			s.histories[i] = h
			return s.withGenset(h), nil
		}
	}
	return models.History{}, store.ErrNotFound
}

func (s *stubStore) DeleteHistory(ctx context.Context, id string) error {
	for i, h := range s.histories {
		if h.ID == id {
			s.histories = append(s.histories[:i], s.histories[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *stubStore) CountHistories(ctx context.Context) (int64, error) {
	return int64(len(s.histories)), nil
}

var errStoreDown = errors.New("connection refused")
