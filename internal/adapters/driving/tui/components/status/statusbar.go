// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaktech/transqiita/internal/adapters/driving/tui/keymap"
	"github.com/speaktech/transqiita/internal/adapters/driving/tui/styles"
	"github.com/speaktech/transqiita/internal/i18n"
)

// State is the picker phase shown in the bar.
type State string

const (
	StateLoading    State = "loading"
	StatePicking    State = "picking"
	StateConfirm    State = "confirm"
	StatePublishing State = "publishing"
	StateDone       State = "done"
	StateError      State = "error"
)

// Bar displays the current phase, worklist counts and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	new     int
	updated int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateLoading, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render(i18n.T("Loading articles..."))
	case StatePublishing:
		return s.styles.Muted.Render(i18n.T("Publishing..."))
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(i18n.T("Error: %s", s.message))
		}
		return s.styles.Error.Render(i18n.T("Error"))
	case StateDone:
		return s.styles.Success.Render(i18n.T("Done"))
	case StatePicking, StateConfirm:
		return s.styles.New.Render(fmt.Sprintf("%d NEW", s.new)) + "  " +
			s.styles.Updated.Render(fmt.Sprintf("%d UPDATED", s.updated))
	}
	return ""
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StatePicking:
		bindings = s.keymap.PickerHelp()
	case StateConfirm:
		bindings = s.keymap.ConfirmHelp()
	case StateLoading, StatePublishing, StateDone, StateError:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// SetCounts sets the NEW and UPDATED counts.
func (s *Bar) SetCounts(newCount, updated int) {
	s.new, s.updated = newCount, updated
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
