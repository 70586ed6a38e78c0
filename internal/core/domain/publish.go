package domain

import (
	"fmt"
	"time"
)

// Draft is a translated article ready to publish.
type Draft struct {
	Title   string
	Body    string
	Tags    []Tag
	Private bool
}

// PublishOptions are the creation-only switches passed to the repository.
type PublishOptions struct {
	// Gist asks the repository to mirror code blocks into a gist.
	Gist bool

	// Tweet asks the repository to announce the new article.
	Tweet bool

	// Private overrides the source article's visibility when set.
	Private bool
}

// PublishResult is the outcome of translating and publishing one item.
type PublishResult struct {
	Item      WorkItem
	Published Article
	Draft     Draft
	DryRun    bool
}

// Status returns the label shown for a finished item.
func (r PublishResult) Status() string {
	if r.DryRun {
		return "DRY RUN"
	}
	return "UPLOADED"
}

// Title returns the translated title, falling back to the source title.
func (r PublishResult) Title() string {
	if r.Draft.Title != "" {
		return r.Draft.Title
	}
	return r.Item.Article.Title
}

// ProgressLine formats "[i/n] (UPLOADED) title". index is zero-based.
func ProgressLine(index, total int, r PublishResult) string {
	return fmt.Sprintf("[%d/%d] (%s) %s", index+1, total, r.Status(), r.Title())
}

// PublishRecord is a history entry for a published translation.
type PublishRecord struct {
	// ID is the unique record identifier.
	ID string

	// SourceID is the original article's id.
	SourceID string

	// TranslatedID is the published translation's id.
	TranslatedID string

	// Title is the translated title.
	Title string

	// URL is the published translation's URL.
	URL string

	// Disposition tells whether the translation was created or updated.
	Disposition Disposition

	// Translator names the backend that produced the text.
	Translator string

	// Repository names the content repository kind.
	Repository string

	// PublishedAt is when the record was written.
	PublishedAt time.Time
}

// RunRecord is the outcome of one unattended worklist and publish pass.
type RunRecord struct {
	StartedAt time.Time
	EndedAt   time.Time

	// Selected is the worklist length.
	Selected int

	// Published counts items that reached the repository.
	Published int

	// Error is the failure message, empty on success.
	Error string
}

// Succeeded reports whether the pass finished without error.
func (r RunRecord) Succeeded() bool {
	return r.Error == ""
}

// Duration returns how long the pass took.
func (r RunRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
