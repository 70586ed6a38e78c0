package services

import "github.com/speaktech/transqiita/internal/core/domain"

// MatchArticles pairs source articles with translated siblings.
//
// For each source article, in order, the target bucket is scanned for the
// first article whose body contains the source id. A sibling strictly older
// than the source makes the source Stale; any other sibling makes it up to
// date and it is dropped. No sibling makes it New. Only the first sibling
// is ever considered.
func MatchArticles(source, target []domain.Article) domain.Worklist {
	worklist := make(domain.Worklist, 0, len(source))

	for i, original := range source {
		sibling, found := findSibling(original.ID, target)
		switch {
		case !found:
			worklist = append(worklist, domain.NewWorkItem(original, i))
		case sibling.UpdatedAt.Before(original.UpdatedAt):
			worklist = append(worklist, domain.StaleWorkItem(original, sibling.ID, i))
		}
	}

	return worklist
}

func findSibling(id string, target []domain.Article) (domain.Article, bool) {
	for _, t := range target {
		if t.References(id) {
			return t, true
		}
	}
	return domain.Article{}, false
}
