// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Button is a form action identified by ID.
type Button struct {
	ID    string
	Label string
}

// Form is a column of fields followed by a row of buttons. Tab and the
// arrow keys move focus; enter on a field moves on and enter on a button
// presses it.
type Form struct {
	theme   *styles.Theme
	fields  []*Field
	buttons []Button
	focus   int
	width   int
}

// NewForm creates an empty form.
func NewForm(theme *styles.Theme) *Form {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return &Form{theme: theme}
}

// AddField appends a field and returns it.
func (f *Form) AddField(label, value string) *Field {
	field := NewField(label, value, f.theme)
	if f.width > 0 {
		field.SetWidth(f.fieldWidth(field))
	}
	f.fields = append(f.fields, field)
	return field
}

// AddButton appends a button.
func (f *Form) AddButton(id, label string) {
	f.buttons = append(f.buttons, Button{ID: id, Label: label})
}

// Fields returns the fields in order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Focus returns the index of the focused control. Fields come first,
// then buttons.
func (f *Form) Focus() int {
	return f.focus
}

// FocusedButton returns the ID of the focused button, or "" when a field
// has focus.
func (f *Form) FocusedButton() string {
	if b := f.focus - len(f.fields); b >= 0 && b < len(f.buttons) {
		return f.buttons[b].ID
	}
	return ""
}

// SetFocus moves focus to control i.
func (f *Form) SetFocus(i int) tea.Cmd {
	n := len(f.fields) + len(f.buttons)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	for _, field := range f.fields {
		field.Blur()
	}
	f.focus = i
	if i < len(f.fields) {
		return f.fields[i].Focus()
	}
	return nil
}

// FocusButton moves focus to the button with the given ID.
func (f *Form) FocusButton(id string) tea.Cmd {
	for i, b := range f.buttons {
		if b.ID == id {
			return f.SetFocus(len(f.fields) + i)
		}
	}
	return nil
}

// SetTheme swaps the styles.
func (f *Form) SetTheme(theme *styles.Theme) {
	if theme == nil {
		return
	}
	f.theme = theme
	for _, field := range f.fields {
		field.SetTheme(theme)
	}
}

// SetWidth sets the width fields may use.
func (f *Form) SetWidth(w int) {
	f.width = w
	for _, field := range f.fields {
		field.SetWidth(f.fieldWidth(field))
	}
}

func (f *Form) fieldWidth(field *Field) int {
	w := f.width - lipgloss.Width(field.Label) - f.theme.MenuVoice.GetHorizontalFrameSize() - 1
	if w < 8 {
		w = 8
	}
	return w
}

// HandleKey applies msg. It returns the ID of a pressed button, or "".
func (f *Form) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return "", f.SetFocus(f.focus + 1)
	case "shift+tab", "up":
		return "", f.SetFocus(f.focus - 1)
	case "left", "right":
		if id := f.FocusedButton(); id != "" {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			b := f.focus - len(f.fields) + delta
			b = ((b % len(f.buttons)) + len(f.buttons)) % len(f.buttons)
			return "", f.SetFocus(len(f.fields) + b)
		}
	case "enter":
		if id := f.FocusedButton(); id != "" {
			return id, nil
		}
		return "", f.SetFocus(f.focus + 1)
	}

	if f.focus < len(f.fields) {
		return "", f.fields[f.focus].Update(msg)
	}
	return "", nil
}

// View renders the fields and the button row.
func (f *Form) View() string {
	rows := make([]string, 0, len(f.fields)+2)
	for _, field := range f.fields {
		rows = append(rows, field.View())
	}

	buttons := make([]string, 0, len(f.buttons))
	for i, b := range f.buttons {
		label := "[ " + b.Label + " ]"
		if len(f.fields)+i == f.focus {
			buttons = append(buttons, f.theme.MenuSelected.Render(label))
		} else {
			buttons = append(buttons, f.theme.MenuVoice.Render(label))
		}
	}
	if len(buttons) > 0 {
		rows = append(rows, "", lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
