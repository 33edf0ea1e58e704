package memory

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"baby-care-log/internal/domain/records"
)

var ErrNotFound = errors.New("record not found")

// Store es un records.Store in-memory para modo dev (sin credenciales
// Feishu configuradas) y para tests. Sin page tokens reales: devuelve
// siempre la primera página.
type Store struct {
	mu   sync.RWMutex
	byID map[string]records.CareRecord
	seq  int
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]records.CareRecord),
	}
}

func (s *Store) Create(ctx context.Context, rec records.CareRecord) (records.CareRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	rec.ID = "mem_" + strconv.Itoa(s.seq)
	if rec.CreatedTime == 0 {
		rec.CreatedTime = rec.Time
	}

	s.byID[rec.ID] = rec
	return rec, nil
}

func (s *Store) List(ctx context.Context, limit int, pageToken string) (records.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]records.CareRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		all = append(all, rec)
	}

	// Más reciente primero.
	sort.Slice(all, func(i, j int) bool {
		return all[i].Time > all[j].Time
	})

	total := len(all)
	hasMore := false
	if limit > 0 && len(all) > limit {
		all = all[:limit]
		hasMore = true
	}

	return records.Page{
		Records: all,
		HasMore: hasMore,
		Total:   total,
	}, nil
}

func (s *Store) Fetch(ctx context.Context, pageSize int) ([]records.CareRecord, error) {
	page, err := s.List(ctx, pageSize, "")
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
