package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	interrupt  key.Binding
	extend     key.Binding
	complete   key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	interrupt: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "log interruption"),
	),
	extend: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "extend"),
	),
	complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
