package gist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure Repository implements the interface.
var _ driven.ContentRepository = (*Repository)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultFilename names the Markdown file of newly created gists.
	DefaultFilename = "article.md"
)

// Config holds gist repository configuration.
type Config struct {
	// Token is a GitHub token with the gist scope (required).
	Token string

	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	BaseURL string
}

// Repository publishes articles as gists.
type Repository struct {
	gh *gh.Client
}

// New creates a gist repository with a static access token.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: github token", domain.ErrAuthRequired)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	client := gh.NewClient(tc)

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: base url: %w", domain.ErrInvalidInput, err)
		}
		client.BaseURL = base
	}

	return &Repository{gh: client}, nil
}

// Kind returns gist.
func (r *Repository) Kind() domain.RepositoryKind {
	return domain.RepositoryGist
}

// ListAuthored returns the authenticated user's Markdown gists. Listing omits
// file contents, so each gist is fetched individually.
func (r *Repository) ListAuthored(ctx context.Context) ([]domain.Article, error) {
	opts := &gh.GistListOptions{ListOptions: gh.ListOptions{PerPage: 100}}

	var articles []domain.Article
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		gists, resp, err := r.gh.Gists.List(ctx, "", opts)
		if err != nil {
			return nil, wrapError(err, "list gists")
		}

		for _, g := range gists {
			if markdownFile(g) == "" {
				continue
			}
			full, _, err := r.gh.Gists.Get(ctx, g.GetID())
			if err != nil {
				return nil, wrapError(err, "get gist "+g.GetID())
			}
			if a, ok := toArticle(full); ok {
				articles = append(articles, a)
			}
		}
		logger.Debug("gist: page %d listed %d gists", opts.Page, len(gists))

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return articles, nil
}

// Create publishes a new gist. Gist and tweet options have no meaning here.
func (r *Repository) Create(ctx context.Context, draft domain.Draft, _ domain.PublishOptions) (*domain.Article, error) {
	g := &gh.Gist{
		Description: gh.Ptr(draft.Title),
		Public:      gh.Ptr(!draft.Private),
		Files: map[gh.GistFilename]gh.GistFile{
			DefaultFilename: {Content: gh.Ptr(draft.Body)},
		},
	}

	created, _, err := r.gh.Gists.Create(ctx, g)
	if err != nil {
		return nil, wrapError(err, "create gist")
	}
	a, _ := toArticle(created)
	return &a, nil
}

// Update rewrites the gist's description and its existing Markdown file.
// Visibility of a gist cannot change after creation.
func (r *Repository) Update(ctx context.Context, id string, draft domain.Draft) (*domain.Article, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty gist id", domain.ErrInvalidInput)
	}

	current, _, err := r.gh.Gists.Get(ctx, id)
	if err != nil {
		return nil, wrapError(err, "get gist "+id)
	}
	name := markdownFile(current)
	if name == "" {
		name = DefaultFilename
	}

	edited, _, err := r.gh.Gists.Edit(ctx, id, &gh.Gist{
		Description: gh.Ptr(draft.Title),
		Files: map[gh.GistFilename]gh.GistFile{
			gh.GistFilename(name): {Content: gh.Ptr(draft.Body)},
		},
	})
	if err != nil {
		return nil, wrapError(err, "edit gist "+id)
	}
	a, _ := toArticle(edited)
	return &a, nil
}

// markdownFile returns the first Markdown filename in name order.
func markdownFile(g *gh.Gist) string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		if strings.HasSuffix(strings.ToLower(string(name)), ".md") {
			names = append(names, string(name))
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

func toArticle(g *gh.Gist) (domain.Article, bool) {
	name := markdownFile(g)
	a := domain.Article{
		ID:        g.GetID(),
		Title:     g.GetDescription(),
		CreatedAt: g.GetCreatedAt().Time,
		UpdatedAt: g.GetUpdatedAt().Time,
		URL:       g.GetHTMLURL(),
		Private:   !g.GetPublic(),
		OwnerID:   g.GetOwner().GetLogin(),
		OwnerName: g.GetOwner().GetName(),
	}
	if name == "" {
		return a, false
	}
	file := g.Files[gh.GistFilename(name)]
	a.Body = file.GetContent()
	if a.Title == "" {
		a.Title = strings.TrimSuffix(name, ".md")
	}
	return a, true
}

// wrapError converts go-github errors to domain errors.
func wrapError(err error, operation string) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: github: %s: %w", domain.ErrRateLimited, operation, err)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: github: %s: %w", domain.ErrAuthInvalid, operation, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: github: %s: %w", domain.ErrNotFound, operation, err)
		}
	}
	return fmt.Errorf("github: %s: %w", operation, err)
}
