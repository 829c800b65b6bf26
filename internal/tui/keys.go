package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	open    key.Binding
	back    key.Binding
	info    key.Binding
	copy    key.Binding
	openURL key.Binding
	refresh key.Binding
	logout  key.Binding
	quit    key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	open:    key.NewBinding(key.WithKeys("enter", "right", "l")),
	back:    key.NewBinding(key.WithKeys("esc", "left", "h", "backspace")),
	info:    key.NewBinding(key.WithKeys("i")),
	copy:    key.NewBinding(key.WithKeys("c")),
	openURL: key.NewBinding(key.WithKeys("o")),
	refresh: key.NewBinding(key.WithKeys("r")),
	logout:  key.NewBinding(key.WithKeys("L")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
