package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Switch key.Binding
	Done   key.Binding
	Delete key.Binding
	Save   key.Binding
	Quit   key.Binding
	QuitQ  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "input/list")),
		Done:   key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		QuitQ:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}
