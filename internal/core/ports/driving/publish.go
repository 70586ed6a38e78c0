package driving

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// PublishRequest configures a publish run.
type PublishRequest struct {
	// Options are passed to the repository on create.
	Options domain.PublishOptions

	// DryRun translates without publishing.
	DryRun bool

	// KeepGoing continues past failed items and joins their errors.
	KeepGoing bool
}

// ProgressFunc is called after each item of a batch completes.
// index is zero-based; err is nil on success.
type ProgressFunc func(index, total int, result *domain.PublishResult, err error)

// PublishService translates worklist items and publishes the results.
type PublishService interface {
	// TranslateAndPublish translates one item and creates (New) or
	// updates (Stale) the remote article.
	TranslateAndPublish(ctx context.Context, item domain.WorkItem, req PublishRequest) (*domain.PublishResult, error)

	// PublishAll processes items sequentially in order.
	PublishAll(ctx context.Context, items domain.Worklist, req PublishRequest, progress ProgressFunc) ([]domain.PublishResult, error)
}
