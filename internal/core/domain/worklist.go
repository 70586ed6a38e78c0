package domain

import "fmt"

// Disposition records why an article was selected for translation.
type Disposition string

const (
	// DispositionNew marks an article that has no translated sibling.
	DispositionNew Disposition = "new"

	// DispositionStale marks an article whose sibling predates its last edit.
	DispositionStale Disposition = "stale"
)

// IsValid returns true if the disposition is recognised.
func (d Disposition) IsValid() bool {
	return d == DispositionNew || d == DispositionStale
}

// String returns the string representation.
func (d Disposition) String() string {
	return string(d)
}

// Label returns the short label shown in listings.
func (d Disposition) Label() string {
	switch d {
	case DispositionNew:
		return "NEW"
	case DispositionStale:
		return "UPDATED"
	default:
		return unknownDescription
	}
}

// WorkItem is one entry of the worklist.
//
// A New item carries the article's position in the source bucket.
// A Stale item carries the id of the sibling to overwrite.
type WorkItem struct {
	Disposition Disposition
	Article     Article
	SiblingID   string
	Position    int
}

// NewWorkItem builds a New item for an unpaired article.
func NewWorkItem(article Article, position int) WorkItem {
	return WorkItem{Disposition: DispositionNew, Article: article, Position: position}
}

// StaleWorkItem builds a Stale item pointing at the sibling to update.
func StaleWorkItem(article Article, siblingID string, position int) WorkItem {
	return WorkItem{Disposition: DispositionStale, Article: article, SiblingID: siblingID, Position: position}
}

// IsNew reports whether the item should be created rather than updated.
func (w WorkItem) IsNew() bool {
	return w.Disposition == DispositionNew
}

// ListLine formats "[001] (NEW) title". index is zero-based.
func ListLine(index int, item WorkItem) string {
	return fmt.Sprintf("[%03d] (%s) %s", index+1, item.Disposition.Label(), item.Article.Title)
}

// Worklist is the ordered set of items selected in one run.
type Worklist []WorkItem

// Counts returns the number of New and Stale items.
func (w Worklist) Counts() (newCount, staleCount int) {
	for _, item := range w {
		if item.IsNew() {
			newCount++
		} else {
			staleCount++
		}
	}
	return newCount, staleCount
}

// Filter returns the items for which keep is true, in order.
func (w Worklist) Filter(keep func(WorkItem) bool) Worklist {
	var out Worklist
	for _, item := range w {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
