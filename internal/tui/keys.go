package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	NextSort key.Binding
	PrevSort key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	NextSort: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next sort")),
	PrevSort: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev sort")),
	NextPage: key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "prev page")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextSort, k.NextPage, k.PrevPage, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextSort, k.PrevSort},
		{k.NextPage, k.PrevPage, k.Up, k.Down},
		{k.Quit},
	}
}
