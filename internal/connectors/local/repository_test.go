package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

const sample = `---
id: qiita-1
title: 記事
tags: [go, cli]
private: true
created_at: 2024-01-01T00:00:00Z
updated_at: 2024-02-01T00:00:00Z
---
本文です。
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	t.Run("rejects empty directory", func(t *testing.T) {
		_, err := New("")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := New("/non/existent/path")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("rejects a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "x")
		_, err := New(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("kind is local", func(t *testing.T) {
		repo, err := New(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, domain.RepositoryLocal, repo.Kind())
	})
}

func TestRepository_ListAuthored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), sample)
	writeFile(t, filepath.Join(dir, "sub", "plain.md"), "# no front matter\n")
	writeFile(t, filepath.Join(dir, ".hidden.md"), sample)
	writeFile(t, filepath.Join(dir, ".git", "x.md"), sample)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "broken.md"), "---\ntitle: x\n")

	repo, err := New(dir)
	require.NoError(t, err)

	got, err := repo.ListAuthored(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, "qiita-1", a.ID)
	assert.Equal(t, "記事", a.Title)
	assert.Equal(t, "本文です。\n", a.Body)
	assert.Equal(t, []string{"go", "cli"}, a.TagNames())
	assert.True(t, a.Private)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), a.UpdatedAt.UTC())
	assert.Contains(t, a.URL, "a.md")

	plain := got[1]
	assert.Equal(t, "plain", plain.ID)
	assert.Equal(t, "no front matter", plain.Title)
	assert.Equal(t, "# no front matter\n", plain.Body)
	assert.False(t, plain.UpdatedAt.IsZero())
	assert.Equal(t, plain.UpdatedAt, plain.CreatedAt)
}

func TestRepository_CreateAndUpdate(t *testing.T) {
	dir := t.TempDir()
	repo, err := New(dir)
	require.NoError(t, err)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	created, err := repo.Create(context.Background(), domain.Draft{
		Title:   "Title",
		Body:    "Body\n",
		Tags:    []domain.Tag{{Name: "go"}},
		Private: true,
	}, domain.PublishOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.FileExists(t, filepath.Join(dir, created.ID+".md"))
	assert.Equal(t, fixed, created.CreatedAt)

	repo.now = func() time.Time { return fixed.Add(time.Hour) }
	updated, err := repo.Update(context.Background(), created.ID, domain.Draft{Title: "New", Body: "New body\n"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, fixed, updated.CreatedAt)
	assert.Equal(t, fixed.Add(time.Hour), updated.UpdatedAt)
	assert.True(t, updated.Private)

	all, err := repo.ListAuthored(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New", all[0].Title)
	assert.Equal(t, "New body\n", all[0].Body)
	assert.Empty(t, all[0].Tags)
}

func TestRepository_Update_FindsByFrontMatterID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nested", "renamed.md"), sample)
	repo, err := New(dir)
	require.NoError(t, err)

	got, err := repo.Update(context.Background(), "qiita-1", domain.Draft{Title: "T", Body: "B"})

	require.NoError(t, err)
	assert.Contains(t, got.URL, "renamed.md")
}

func TestRepository_Update_Errors(t *testing.T) {
	repo, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), "", domain.Draft{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = repo.Update(context.Background(), "missing", domain.Draft{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_Watch(t *testing.T) {
	t.Run("emits ids of written articles", func(t *testing.T) {
		dir := t.TempDir()
		repo, err := New(dir)
		require.NoError(t, err)
		defer repo.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ids, err := repo.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			tmp := filepath.Join(dir, "a.tmp")
			_ = os.WriteFile(tmp, []byte(sample), 0o644)
			_ = os.Rename(tmp, filepath.Join(dir, "a.md"))
		}()

		select {
		case id := <-ids:
			assert.Equal(t, "qiita-1", id)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		repo, err := New(t.TempDir())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		ids, err := repo.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-ids:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error when closed", func(t *testing.T) {
		repo, err := New(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		ids, err := repo.Watch(context.Background())
		assert.Error(t, err)
		assert.Nil(t, ids)
	})
}

func TestRepository_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	repo, err := New(dir)
	require.NoError(t, err)

	md := filepath.Join(dir, "a.md")
	writeFile(t, md, sample)
	hidden := filepath.Join(dir, ".draft.md")
	writeFile(t, hidden, sample)
	txt := filepath.Join(dir, "a.txt")
	writeFile(t, txt, "x")
	empty := filepath.Join(dir, "empty.md")
	writeFile(t, empty, "")
	sub := filepath.Join(dir, "sub.md")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create", md, fsnotify.Create, true},
		{"write", md, fsnotify.Write, true},
		{"remove", md, fsnotify.Remove, false},
		{"rename", md, fsnotify.Rename, false},
		{"chmod", md, fsnotify.Chmod, false},
		{"hidden file", hidden, fsnotify.Write, false},
		{"not markdown", txt, fsnotify.Write, false},
		{"directory", sub, fsnotify.Create, false},
		{"empty file", empty, fsnotify.Create, false},
		{"vanished", filepath.Join(dir, "gone.md"), fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := repo.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, "qiita-1", id)
			}
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{".hidden", true},
		{"path/to/.hidden", true},
		{"dir/.git/config", true},
		{"file.md", false},
		{"path/to/file.md", false},
		{".", false},
		{"..", false},
		{"path/../file", false},
		{"", false},
		{"file.hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isHidden(tt.path))
		})
	}
}

func TestFrontMatter_RoundTrip(t *testing.T) {
	fm := frontMatter{ID: "x", Title: "T: colon", Tags: []string{"a"}, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	data, err := renderDocument(fm, "body\n---\nnot front matter\n")
	require.NoError(t, err)

	got, body, err := parseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, fm.Title, got.Title)
	assert.Equal(t, fm.Tags, got.Tags)
	assert.True(t, fm.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, got.UpdatedAt.IsZero())
	assert.Equal(t, "body\n---\nnot front matter\n", body)
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{"first heading", "intro\n# Title One\n# Second\n", "/x/a.md", "Title One"},
		{"skips fenced heading", "```sh\n# comment\n```\n# Real\n", "/x/a.md", "Real"},
		{"ignores level two", "## Sub\ntext\n", "/x/my_first-post.md", "my first post"},
		{"empty body", "", "/x/notes.md", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackTitle(tt.body, tt.path))
		})
	}
}
