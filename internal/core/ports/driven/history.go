package driven

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// HistoryStore persists publish history.
type HistoryStore interface {
	// Record stores a publish record.
	Record(ctx context.Context, record domain.PublishRecord) error

	// List returns the most recent records first, at most limit entries.
	// A limit of zero or less returns everything.
	List(ctx context.Context, limit int) ([]domain.PublishRecord, error)

	// LastFor returns the newest record for a source article.
	// Returns domain.ErrNotFound when the article was never published.
	LastFor(ctx context.Context, sourceID string) (*domain.PublishRecord, error)

	// Close releases resources.
	Close() error
}
