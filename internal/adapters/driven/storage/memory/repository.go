package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure Repository implements the interface.
var _ driven.ContentRepository = (*Repository)(nil)

// Repository is an in-memory implementation of driven.ContentRepository.
type Repository struct {
	mu       sync.RWMutex
	articles []domain.Article
	now      func() time.Time

	// Failure injection for tests.
	ListErr   error
	CreateErr error
	UpdateErr error

	// Created and Updated record calls in order.
	Created []domain.Draft
	Updated []string
	Options []domain.PublishOptions
}

// NewRepository creates a repository holding the given articles.
func NewRepository(articles ...domain.Article) *Repository {
	return &Repository{
		articles: slices.Clone(articles),
		now:      time.Now,
	}
}

// Kind reports the local kind; the memory store stands in for a directory.
func (r *Repository) Kind() domain.RepositoryKind {
	return domain.RepositoryLocal
}

// ListAuthored returns a copy of all articles in insertion order.
func (r *Repository) ListAuthored(_ context.Context) ([]domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return slices.Clone(r.articles), nil
}

// Create appends a new article built from the draft.
func (r *Repository) Create(_ context.Context, draft domain.Draft, opts domain.PublishOptions) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	now := r.now()
	id := uuid.New().String()
	article := domain.Article{
		ID:        id,
		Title:     draft.Title,
		Body:      draft.Body,
		Tags:      draft.Tags,
		CreatedAt: now,
		UpdatedAt: now,
		URL:       "memory://" + id,
		Private:   draft.Private,
	}
	r.articles = append(r.articles, article)
	r.Created = append(r.Created, draft)
	r.Options = append(r.Options, opts)
	return &article, nil
}

// Update overwrites the article with the given id.
func (r *Repository) Update(_ context.Context, id string, draft domain.Draft) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return nil, r.UpdateErr
	}

	i := slices.IndexFunc(r.articles, func(a domain.Article) bool { return a.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}
	a := &r.articles[i]
	a.Title = draft.Title
	a.Body = draft.Body
	a.Tags = draft.Tags
	a.Private = draft.Private
	a.UpdatedAt = r.now()
	r.Updated = append(r.Updated, id)

	updated := *a
	return &updated, nil
}

// Get returns a stored article by id.
func (r *Repository) Get(id string) (domain.Article, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.articles {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Article{}, false
}
