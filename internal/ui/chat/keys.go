// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the chat screen bindings.
type KeyMap struct {
	ToggleFocus key.Binding
	Submit      key.Binding
	Newline     key.Binding
	Quit        key.Binding
	Back        key.Binding
	Settings    key.Binding
	Help        key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
}

// DefaultKeyMap returns the default chat bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleFocus: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "switch pane"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "new line"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "main menu"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "chat settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("M-h", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
	}
}

// ShortHelp returns the bindings shown under the input box.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.ToggleFocus, k.Settings, k.Help, k.Back}
}

// FullHelp returns the bindings grouped for the help screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Input
		{k.Submit, k.Newline, k.ToggleFocus},
		// History pane
		{k.Up, k.Down, k.PageUp, k.PageDown},
		// Screens
		{k.Settings, k.Help, k.Back, k.Quit},
	}
}
