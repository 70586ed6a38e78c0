package qiita

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure Repository implements the interface.
var _ driven.ContentRepository = (*Repository)(nil)

// Repository is the Qiita content repository.
type Repository struct {
	client  *Client
	perPage int
}

// New validates the token and creates a repository.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	return NewWithHTTPClient(ctx, cfg, nil)
}

// NewWithHTTPClient is New with a custom base HTTP client.
func NewWithHTTPClient(ctx context.Context, cfg Config, base *http.Client) (*Repository, error) {
	if err := ValidateToken(cfg.Token); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Repository{
		client:  NewClient(ctx, cfg, base),
		perPage: cfg.PerPage,
	}, nil
}

// Kind returns qiita.
func (r *Repository) Kind() domain.RepositoryKind {
	return domain.RepositoryQiita
}

// ListAuthored pages through the authenticated user's items.
func (r *Repository) ListAuthored(ctx context.Context) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("per_page", strconv.Itoa(r.perPage))
	next := "/api/v2/authenticated_user/items?" + q.Encode()

	var articles []domain.Article
	for page := 1; next != ""; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var items []item
		resp, err := r.client.do(ctx, http.MethodGet, next, nil, &items)
		if err != nil {
			return nil, fmt.Errorf("list items page %d: %w", page, err)
		}
		logger.Debug("qiita: page %d returned %d items", page, len(items))

		for _, it := range items {
			articles = append(articles, it.article())
		}
		next = ParseNextLink(resp.Header.Get("Link"))
	}
	return articles, nil
}

// Create posts a new item. Gist and tweet are creation-only switches.
func (r *Repository) Create(ctx context.Context, draft domain.Draft, opts domain.PublishOptions) (*domain.Article, error) {
	body := newItemRequest(draft)
	body.Gist = &opts.Gist
	body.Tweet = &opts.Tweet

	var created item
	if _, err := r.client.do(ctx, http.MethodPost, "/api/v2/items", body, &created); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	a := created.article()
	return &a, nil
}

// Update patches an existing item.
func (r *Repository) Update(ctx context.Context, id string, draft domain.Draft) (*domain.Article, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}

	var updated item
	path := "/api/v2/items/" + url.PathEscape(id)
	if _, err := r.client.do(ctx, http.MethodPatch, path, newItemRequest(draft), &updated); err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}
	a := updated.article()
	return &a, nil
}
