package gist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

func newTestRepository(t *testing.T, mux *http.ServeMux) *Repository {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	repo, err := New(context.Background(), Config{Token: "ghp_test", BaseURL: srv.URL})
	require.NoError(t, err)
	return repo
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestRepository_ListAuthored(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gists", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id":"g1","description":"記事","files":{"a.md":{"filename":"a.md"}}},
			{"id":"g2","description":"code","files":{"main.go":{"filename":"main.go"}}}
		]`)
	})
	mux.HandleFunc("GET /gists/g1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"g1","description":"記事","public":false,
			"html_url":"https://gist.github.com/g1",
			"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-02-01T00:00:00Z",
			"owner":{"login":"octo"},
			"files":{"b.md":{"filename":"b.md","content":"second"},"a.md":{"filename":"a.md","content":"本文"}}}`)
	})
	mux.HandleFunc("GET /gists/g2", func(http.ResponseWriter, *http.Request) {
		t.Error("gists without Markdown must not be fetched")
	})
	repo := newTestRepository(t, mux)

	got, err := repo.ListAuthored(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, "記事", got[0].Title)
	assert.Equal(t, "本文", got[0].Body)
	assert.True(t, got[0].Private)
	assert.Equal(t, "octo", got[0].OwnerID)
	assert.Equal(t, "https://gist.github.com/g1", got[0].URL)
	assert.True(t, got[0].UpdatedAt.After(got[0].CreatedAt))
}

func TestRepository_Create(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /gists", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Description string                       `json:"description"`
			Public      bool                         `json:"public"`
			Files       map[string]map[string]string `json:"files"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Title", body.Description)
		assert.True(t, body.Public)
		assert.Equal(t, "Body", body.Files[DefaultFilename]["content"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new","description":"Title","public":true,
			"files":{"article.md":{"filename":"article.md","content":"Body"}}}`)
	})
	repo := newTestRepository(t, mux)

	got, err := repo.Create(context.Background(), domain.Draft{Title: "Title", Body: "Body"}, domain.PublishOptions{})

	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
	assert.False(t, got.Private)
}

func TestRepository_Update_KeepsFilename(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gists/g1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"g1","files":{"notes.md":{"filename":"notes.md","content":"old"}}}`)
	})
	mux.HandleFunc("PATCH /gists/g1", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Files map[string]map[string]string `json:"files"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Files, "notes.md")
		assert.NotContains(t, body.Files, DefaultFilename)

		_, _ = io.WriteString(w, `{"id":"g1","description":"T","files":{"notes.md":{"filename":"notes.md","content":"new"}}}`)
	})
	repo := newTestRepository(t, mux)

	got, err := repo.Update(context.Background(), "g1", domain.Draft{Title: "T", Body: "new"})

	require.NoError(t, err)
	assert.Equal(t, "new", got.Body)
}

func TestRepository_Update_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gists/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
	})
	repo := newTestRepository(t, mux)

	_, err := repo.Update(context.Background(), "missing", domain.Draft{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_Kind(t *testing.T) {
	repo, err := New(context.Background(), Config{Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, domain.RepositoryGist, repo.Kind())
}
