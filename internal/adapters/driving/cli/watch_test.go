package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

func TestWatchCmd_TranslatesChangedArticles(t *testing.T) {
	env := setupServices(t, testWorklist())
	repo := &fakeWatchRepository{
		fakeRepository: fakeRepository{kind: domain.RepositoryLocal},
		ids:            []string{"a3", "unknown", "a2"},
	}
	env.services.Open = func(_ context.Context, _ string) (*Runtime, error) {
		return &Runtime{Repository: repo, Worklist: env.worklist, Publish: env.publish}, nil
	}

	out, err := execute(t, "", "watch")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching for changes.")
	assert.Contains(t, out, "[1/1] (UPLOADED) EN テスト")
	assert.Contains(t, out, "[1/1] (UPLOADED) EN 並行処理")

	published := env.publish.published()
	require.Len(t, published, 2)
	assert.Equal(t, "a3", published[0].Article.ID)
	assert.Equal(t, "a2", published[1].Article.ID)
}

func TestWatchCmd_RequiresWatchableRepository(t *testing.T) {
	setupServices(t, testWorklist())

	_, err := execute(t, "", "watch")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
