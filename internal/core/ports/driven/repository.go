package driven

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// ContentRepository is the remote (or local) home of the user's articles.
// The access credential is bound when the repository is constructed.
type ContentRepository interface {
	// Kind identifies the repository type.
	Kind() domain.RepositoryKind

	// ListAuthored returns every article authored by the credential's owner.
	// Pagination is handled internally; order follows the repository.
	ListAuthored(ctx context.Context) ([]domain.Article, error)

	// Create publishes a new article and returns the stored snapshot.
	Create(ctx context.Context, draft domain.Draft, opts domain.PublishOptions) (*domain.Article, error)

	// Update overwrites an existing article and returns the stored snapshot.
	Update(ctx context.Context, id string, draft domain.Draft) (*domain.Article, error)
}

// WatchableRepository is implemented by repositories that can report edits.
type WatchableRepository interface {
	ContentRepository

	// Watch emits the ids of changed articles until ctx is cancelled.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan string, error)
}
