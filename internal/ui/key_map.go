package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	add       key.Binding
	edit      key.Binding
	delete    key.Binding
	visualize key.Binding
	insertion key.Binding
	selection key.Binding
	stop      key.Binding
	faster    key.Binding
	slower    key.Binding
	next      key.Binding
	submit    key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		visualize: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visualizer")),
		insertion: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insertion sort")),
		selection: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "selection sort")),
		stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		slower:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.add, k.edit, k.delete},
		{k.visualize, k.insertion, k.selection, k.stop},
		{k.faster, k.slower, k.back, k.quit},
	}
}
