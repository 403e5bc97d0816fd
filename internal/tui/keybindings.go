package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the watch view.
type KeyMap struct {
	Advance   key.Binding
	Reset     key.Binding
	ClearDebt key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap provides the default key bindings for the watch view.
var DefaultKeyMap = KeyMap{
	Advance: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a", "advance phase"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset to exploring"),
	),
	ClearDebt: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear debt"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Reset, k.ClearDebt},
		{k.Help, k.Quit},
	}
}
