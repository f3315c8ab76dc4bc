package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Advance key.Binding
	Pick    key.Binding
	EndTurn key.Binding
	NewGame key.Binding
	Sound   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Advance: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "read on"),
	),
	Pick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "play card / choose"),
	),
	EndTurn: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end turn"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new game"),
	),
	Sound: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sound"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Pick, k.EndTurn, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Pick, k.EndTurn},
		{k.NewGame, k.Sound, k.Help, k.Quit},
	}
}
