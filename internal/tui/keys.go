// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Remove   key.Binding
	Qty      key.Binding
	Clear    key.Binding
	Checkout key.Binding
	Add      key.Binding
	Pane     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Dec:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		Remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Qty:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "qty")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "empty")),
		Checkout: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
		Add:      key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "add")),
		Pane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "catalog")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Inc, k.Dec, k.Remove, k.Qty, k.Clear, k.Checkout, k.Pane, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pane},
		{k.Inc, k.Dec, k.Remove, k.Qty},
		{k.Add, k.Clear, k.Checkout, k.Quit},
	}
}
