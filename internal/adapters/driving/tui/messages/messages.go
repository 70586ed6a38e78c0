// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/speaktech/transqiita/internal/core/domain"
)

// WorklistLoaded carries the worklist built from the repository.
type WorklistLoaded struct {
	Worklist domain.Worklist
	Err      error
}

// ItemPublished is sent after each article of a batch completes.
// Index is zero-based.
type ItemPublished struct {
	Index  int
	Total  int
	Result *domain.PublishResult
	Err    error
}

// PublishFinished is sent when the batch is over.
type PublishFinished struct {
	Results []domain.PublishResult
	Err     error
}
