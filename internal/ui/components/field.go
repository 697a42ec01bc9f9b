// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Field is a labelled single-line input with an inline error caption.
type Field struct {
	Label string

	input textinput.Model
	err   string
	theme *styles.Theme
}

// NewField creates a blurred field holding value.
func NewField(label, value string, theme *styles.Theme) *Field {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.SetValue(value)

	f := &Field{Label: label, input: ti, theme: theme}
	f.applyTheme()
	return f
}

func (f *Field) applyTheme() {
	f.input.TextStyle = f.theme.NormalContent
	f.input.PlaceholderStyle = f.theme.Hint
}

// SetTheme swaps the styles.
func (f *Field) SetTheme(theme *styles.Theme) {
	if theme != nil {
		f.theme = theme
		f.applyTheme()
	}
}

// Value returns the current text.
func (f *Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text and clears any error.
func (f *Field) SetValue(v string) {
	f.input.SetValue(v)
	f.err = ""
}

// SetPlaceholder sets the text shown while the field is empty.
func (f *Field) SetPlaceholder(p string) {
	f.input.Placeholder = p
}

// SetError clears the text and shows msg under the field until the next
// edit.
func (f *Field) SetError(msg string) {
	f.input.SetValue("")
	f.err = msg
}

// Err returns the visible error caption.
func (f *Field) Err() string {
	return f.err
}

// SetWidth sets the input width in columns.
func (f *Field) SetWidth(w int) {
	f.input.Width = w
}

// Focus gives the field the cursor.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes the cursor.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has the cursor.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// Update forwards msg to the input. Any edit clears the error.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.err = ""
	}
	return cmd
}

// View renders the label, the input and the error caption if any.
func (f *Field) View() string {
	label := f.theme.MenuVoice.Render(f.Label)
	if f.Focused() {
		label = f.theme.MenuSelected.Render(f.Label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, label, f.input.View())
	if f.err == "" {
		return row
	}
	return lipgloss.JoinVertical(lipgloss.Left, row, f.theme.Error.Render("  "+f.err))
}
