package tui

import "github.com/charmbracelet/bubbles/key"

// selectorKeys are the bindings of the correction selector.
type selectorKeys struct {
	Accept key.Binding
	Prev   key.Binding
	Next   key.Binding
	Abort  key.Binding
}

func newSelectorKeys() selectorKeys {
	return selectorKeys{
		Accept: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "run")),
		Prev:   key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑", "prev")),
		Next:   key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓", "next")),
		Abort:  key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("ctrl+c", "abort")),
	}
}

// ShortHelp implements help.KeyMap.
func (k selectorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Prev, k.Next, k.Abort}
}

// FullHelp implements help.KeyMap.
func (k selectorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
