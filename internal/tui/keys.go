package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit  key.Binding
	Clear key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Clear: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear console")),
	}
}

func (k keyMap) help() string {
	parts := []string{"click a control"}
	for _, b := range []key.Binding{k.Quit, k.Clear} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
