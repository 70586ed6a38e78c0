// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/speaktech/transqiita/internal/i18n"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Pick selects the highlighted article.
	Pick key.Binding

	// All selects every article in the worklist.
	All key.Binding

	// Yes and No answer the confirmation prompt.
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default keybindings. Help text is translated
// with the active UI language.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", i18n.T("quit")),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", i18n.T("up")),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", i18n.T("down")),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "pgdown"),
			key.WithHelp("n", i18n.T("next page")),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("b", "left", "pgup"),
			key.WithHelp("b", i18n.T("previous page")),
		),
		Pick: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("translate")),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", i18n.T("translate all")),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", i18n.T("yes")),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", i18n.T("no")),
		),
	}
}

// PickerHelp returns keybindings shown while choosing articles.
func (k *KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Pick, k.All, k.Quit}
}

// ConfirmHelp returns keybindings shown at the confirmation prompt.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

// ShortHelp returns keybindings shown in every other state.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
