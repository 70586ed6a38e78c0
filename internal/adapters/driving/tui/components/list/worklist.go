// Package list provides the paged worklist component for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/speaktech/transqiita/internal/adapters/driving/tui/styles"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/i18n"
)

// PageSize is the number of entries shown per page.
const PageSize = 10

// Worklist displays worklist items ten at a time with a cursor.
type Worklist struct {
	items  domain.Worklist
	cursor int
	styles *styles.Styles
	width  int
}

// NewWorklist creates an empty list.
func NewWorklist(s *styles.Styles) *Worklist {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Worklist{styles: s, width: 80}
}

// SetItems replaces the items and resets the cursor.
func (w *Worklist) SetItems(items domain.Worklist) {
	w.items = items
	w.cursor = 0
}

// Items returns the items.
func (w *Worklist) Items() domain.Worklist {
	return w.items
}

// Count returns the number of items.
func (w *Worklist) Count() int {
	return len(w.items)
}

// Cursor returns the absolute index of the highlighted item.
func (w *Worklist) Cursor() int {
	return w.cursor
}

// Selected returns the highlighted item, or false if the list is empty.
func (w *Worklist) Selected() (domain.WorkItem, bool) {
	if w.cursor < 0 || w.cursor >= len(w.items) {
		return domain.WorkItem{}, false
	}
	return w.items[w.cursor], true
}

// Page returns the zero-based current page.
func (w *Worklist) Page() int {
	return w.cursor / PageSize
}

// Pages returns the number of pages, at least one.
func (w *Worklist) Pages() int {
	if len(w.items) == 0 {
		return 1
	}
	return (len(w.items) + PageSize - 1) / PageSize
}

// MoveUp moves the cursor up within the list.
func (w *Worklist) MoveUp() {
	if w.cursor > 0 {
		w.cursor--
	}
}

// MoveDown moves the cursor down within the list.
func (w *Worklist) MoveDown() {
	if w.cursor < len(w.items)-1 {
		w.cursor++
	}
}

// NextPage moves to the first entry of the next page. It stays on the last page.
func (w *Worklist) NextPage() {
	if w.Page() < w.Pages()-1 {
		w.cursor = (w.Page() + 1) * PageSize
	}
}

// PrevPage moves to the first entry of the previous page.
func (w *Worklist) PrevPage() {
	if w.Page() > 0 {
		w.cursor = (w.Page() - 1) * PageSize
	}
}

// SetWidth sets the rendering width.
func (w *Worklist) SetWidth(width int) {
	w.width = width
}

// View renders the current page.
func (w *Worklist) View() string {
	if len(w.items) == 0 {
		return w.styles.Muted.Render(i18n.T("Nothing to translate."))
	}

	start := w.Page() * PageSize
	end := min(start+PageSize, len(w.items))

	lines := make([]string, 0, end-start+2)
	for i := start; i < end; i++ {
		lines = append(lines, w.renderItem(i))
	}
	lines = append(lines, "", w.styles.Muted.Render(
		i18n.T("page %d/%d (%d articles)", w.Page()+1, w.Pages(), len(w.items))))
	return strings.Join(lines, "\n")
}

// Line formats one entry as "[NNN] (NEW) title" with a one-based number.
func Line(index int, item domain.WorkItem) string {
	return domain.ListLine(index, item)
}

func (w *Worklist) renderItem(i int) string {
	item := w.items[i]
	title := truncate(item.Article.Title, w.width-20)

	if i == w.cursor {
		return w.styles.Selected.Render(fmt.Sprintf("> [%03d] (%s) %s",
			i+1, item.Disposition.Label(), title))
	}
	label := w.styles.Disposition(item.Disposition).Render("(" + item.Disposition.Label() + ")")
	return fmt.Sprintf("  [%03d] %s %s", i+1, label, w.styles.Normal.Render(title))
}

// truncate shortens s to max display cells.
func truncate(s string, maxWidth int) string {
	if maxWidth < 10 {
		maxWidth = 10
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
