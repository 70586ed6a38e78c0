package connectors

import (
	"context"
	"fmt"

	"github.com/speaktech/transqiita/internal/connectors/gist"
	"github.com/speaktech/transqiita/internal/connectors/local"
	"github.com/speaktech/transqiita/internal/connectors/qiita"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Open creates the repository described by settings. The credential is bound
// here and used for every later call.
func Open(ctx context.Context, settings domain.RepositorySettings) (driven.ContentRepository, error) {
	var (
		repo driven.ContentRepository
		err  error
	)
	switch settings.Kind {
	case domain.RepositoryQiita:
		var r *qiita.Repository
		r, err = qiita.New(ctx, qiita.Config{Token: settings.Token, BaseURL: settings.BaseURL})
		repo = r
	case domain.RepositoryGist:
		var r *gist.Repository
		r, err = gist.New(ctx, gist.Config{Token: settings.Token, BaseURL: settings.BaseURL})
		repo = r
	case domain.RepositoryLocal:
		var r *local.Repository
		r, err = local.New(settings.Directory)
		repo = r
	default:
		err = fmt.Errorf("%w: repository %q", domain.ErrUnsupportedType, settings.Kind)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}
