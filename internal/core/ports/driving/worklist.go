package driving

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// WorklistService selects the articles that need translating.
type WorklistService interface {
	// Build fetches the corpus, classifies it and returns the worklist.
	Build(ctx context.Context) (domain.Worklist, error)

	// Classify splits a corpus into source and target buckets,
	// preserving corpus order within each bucket.
	Classify(ctx context.Context, corpus []domain.Article) (source, target []domain.Article, err error)

	// Match pairs source articles with translated siblings.
	Match(source, target []domain.Article) domain.Worklist
}
