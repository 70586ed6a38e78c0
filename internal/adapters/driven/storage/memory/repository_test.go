package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

func TestRepository_ListAuthored(t *testing.T) {
	repo := NewRepository(domain.Article{ID: "a"}, domain.Article{ID: "b"})

	got, err := repo.ListAuthored(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	repo.ListErr = errors.New("boom")
	_, err = repo.ListAuthored(context.Background())
	assert.Error(t, err)
}

func TestRepository_CreateAndUpdate(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewRepository()
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Draft{Title: "T", Body: "B"}, domain.PublishOptions{Tweet: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixed, created.UpdatedAt)
	assert.True(t, repo.Options[0].Tweet)

	updated, err := repo.Update(ctx, created.ID, domain.Draft{Title: "T2", Body: "B2", Private: true})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.True(t, updated.Private)
	assert.Equal(t, []string{created.ID}, repo.Updated)

	stored, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "B2", stored.Body)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Update(context.Background(), "missing", domain.Draft{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, domain.PublishRecord{ID: "1", SourceID: "a", PublishedAt: base}))
	require.NoError(t, store.Record(ctx, domain.PublishRecord{ID: "2", SourceID: "b", PublishedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Record(ctx, domain.PublishRecord{ID: "3", SourceID: "a", PublishedAt: base.Add(2 * time.Hour)}))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	last, err := store.LastFor(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "3", last.ID)

	_, err = store.LastFor(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, store.Close())
}

func TestRunStore_ListAndPrune(t *testing.T) {
	ctx := context.Background()
	s := NewRunStore()
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.RecordRun(ctx, domain.RunRecord{Selected: i}))
	}

	got, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Selected)
	assert.Equal(t, 2, got[1].Selected)

	require.NoError(t, s.PruneRuns(ctx, 1))
	got, _ = s.ListRuns(ctx, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Selected)
}
