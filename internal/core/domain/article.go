package domain

import (
	"strings"
	"time"
)

// Tag is an article tag. Order within Article.Tags is significant and is
// carried unchanged into translations.
type Tag struct {
	// Name is the tag label.
	Name string

	// Versions holds optional version qualifiers (Qiita tags carry these).
	Versions []string
}

// Article is a read-only snapshot of an authored document.
type Article struct {
	// ID is the repository's opaque identifier. It is also the marker
	// embedded in a translation's banner.
	ID string

	// Title is the human-readable title.
	Title string

	// Body is the raw Markdown body.
	Body string

	// Tags is the ordered tag list.
	Tags []Tag

	// CreatedAt is when the article was first published.
	CreatedAt time.Time

	// UpdatedAt is when the article was last edited.
	UpdatedAt time.Time

	// URL is the public location of the article.
	URL string

	// Private marks limited-visibility articles.
	Private bool

	// OwnerID and OwnerName identify the author.
	OwnerID   string
	OwnerName string
}

// TagNames returns the tag names in order.
func (a Article) TagNames() []string {
	names := make([]string, len(a.Tags))
	for i, t := range a.Tags {
		names[i] = t.Name
	}
	return names
}

// References reports whether the article body embeds id as a back-reference.
// Matching is a plain substring search.
func (a Article) References(id string) bool {
	if id == "" {
		return false
	}
	return strings.Contains(a.Body, id)
}
