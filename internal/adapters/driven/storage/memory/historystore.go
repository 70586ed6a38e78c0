package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.PublishRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores a publish record.
func (s *HistoryStore) Record(_ context.Context, record domain.PublishRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// List returns records newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.PublishRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PublishRecord, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LastFor returns the newest record for a source article.
func (s *HistoryStore) LastFor(ctx context.Context, sourceID string) (*domain.PublishRecord, error) {
	all, _ := s.List(ctx, 0)
	for i := range all {
		if all[i].SourceID == sourceID {
			return &all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Close is a no-op for the memory store.
func (s *HistoryStore) Close() error {
	return nil
}
