package services

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads publish history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns the newest records first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	return s.store.List(ctx, limit)
}

// ForArticle returns the last record for a source article.
func (s *HistoryService) ForArticle(ctx context.Context, sourceID string) (*domain.PublishRecord, error) {
	if sourceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.LastFor(ctx, sourceID)
}
