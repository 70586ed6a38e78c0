package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func record(id, source string, at time.Time) domain.PublishRecord {
	return domain.PublishRecord{
		ID:           id,
		SourceID:     source,
		TranslatedID: "t-" + source,
		Title:        "Title " + source,
		URL:          "https://qiita.com/u/items/t-" + source,
		Disposition:  domain.DispositionNew,
		Translator:   "google",
		Repository:   "qiita",
		PublishedAt:  at,
	}
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".transqiita", "data", "history.db"), store.Path())
}

func TestNewStore_Migrations(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := setupTestStore(t)
	h := store.HistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, h.Record(ctx, record("r1", "A", base)))
	require.NoError(t, h.Record(ctx, record("r2", "B", base.Add(time.Hour))))
	require.NoError(t, h.Record(ctx, record("r3", "C", base.Add(2*time.Hour))))

	all, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].ID)
	assert.Equal(t, "r1", all[2].ID)
	assert.True(t, all[2].PublishedAt.Equal(base))
	assert.Equal(t, domain.DispositionNew, all[2].Disposition)
	assert.Equal(t, "https://qiita.com/u/items/t-A", all[2].URL)

	limited, err := h.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestHistoryStore_Record_Upsert(t *testing.T) {
	store := setupTestStore(t)
	h := store.HistoryStore()
	ctx := context.Background()
	r := record("r1", "A", time.Now())

	require.NoError(t, h.Record(ctx, r))
	r.Title = "Renamed"
	r.Disposition = domain.DispositionStale
	require.NoError(t, h.Record(ctx, r))

	all, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Title)
	assert.Equal(t, domain.DispositionStale, all[0].Disposition)
}

func TestHistoryStore_Record_Invalid(t *testing.T) {
	store := setupTestStore(t)

	err := store.HistoryStore().Record(context.Background(), domain.PublishRecord{ID: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_LastFor(t *testing.T) {
	store := setupTestStore(t)
	h := store.HistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, h.Record(ctx, record("r1", "A", base)))
	require.NoError(t, h.Record(ctx, record("r2", "A", base.Add(time.Minute))))
	require.NoError(t, h.Record(ctx, record("r3", "B", base.Add(time.Hour))))

	got, err := h.LastFor(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)

	_, err = h.LastFor(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, h.Close())
}

func TestRunStore_RecordListPrune(t *testing.T) {
	store := setupTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		run := domain.RunRecord{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i)*time.Hour + time.Second),
			Selected:  i,
			Published: i,
		}
		if i == 4 {
			run.Error = "publish failed"
		}
		require.NoError(t, runs.RecordRun(ctx, run))
	}

	got, err := runs.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].Selected)
	assert.False(t, got[0].Succeeded())
	assert.True(t, got[1].Succeeded())
	assert.Equal(t, time.Second, got[1].Duration())

	require.NoError(t, runs.PruneRuns(ctx, 3))
	got, err = runs.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[2].Selected)
}
