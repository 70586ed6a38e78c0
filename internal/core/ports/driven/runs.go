package driven

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// RunStore persists outcomes of scheduled passes.
type RunStore interface {
	// RecordRun stores one pass.
	RecordRun(ctx context.Context, run domain.RunRecord) error

	// ListRuns returns the most recent passes first, at most limit entries.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// PruneRuns keeps only the newest keep passes.
	PruneRuns(ctx context.Context, keep int) error
}
