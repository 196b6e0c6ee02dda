package term

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board key bindings.
type KeyMap struct {
	Cancel key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the default set of bindings.
var DefaultKeyMap = KeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy order"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cancel, k.Copy},
		{k.Help, k.Quit},
	}
}
