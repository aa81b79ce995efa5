package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap describes the bindings for the help line and the help pager.
// Dispatch itself happens in the input modes.
type KeyMap struct {
	Submit    key.Binding
	Blur      key.Binding
	Focus     key.Binding
	Retry     key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	editing bool
}

// DefaultKeyMap returns the key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Blur:      key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc/tab", "leave input")),
		Focus:     key.NewBinding(key.WithKeys("/", "i", "s", "tab"), key.WithHelp("/", "edit location")),
		Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "search again")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear location")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ForMode returns a copy of the map showing the bindings for the given mode
func (k KeyMap) ForMode(editing bool) KeyMap {
	k.editing = editing
	return k
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	if k.editing {
		return []key.Binding{k.Submit, k.Blur, k.ForceQuit}
	}
	return []key.Binding{k.Submit, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Blur, k.ForceQuit},
		{k.Focus, k.Retry, k.Clear, k.Help, k.Quit},
	}
}

var _ help.KeyMap = KeyMap{}
