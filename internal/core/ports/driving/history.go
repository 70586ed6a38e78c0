package driving

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// HistoryService exposes publish history.
type HistoryService interface {
	// Recent returns the newest records first.
	Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error)

	// ForArticle returns the last record for a source article.
	ForArticle(ctx context.Context, sourceID string) (*domain.PublishRecord, error)
}
