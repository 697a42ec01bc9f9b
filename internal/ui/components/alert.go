// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Alert is a dismissible message box shown over the current screen.
type Alert struct {
	theme       *styles.Theme
	title       string
	messages    []string
	suggestions []string
	logPath     string
	visible     bool
	width       int
	height      int
}

// NewAlert creates a hidden alert.
func NewAlert(theme *styles.Theme, title string) *Alert {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return &Alert{theme: theme, title: title}
}

// Add appends a message and shows the alert.
func (a *Alert) Add(message string) {
	a.messages = append(a.messages, message)
	a.visible = true
}

// Messages returns the queued messages.
func (a *Alert) Messages() []string {
	return a.messages
}

// SetSuggestions sets the hints listed under the messages.
func (a *Alert) SetSuggestions(s ...string) {
	a.suggestions = s
}

// SetLogPath names the log file the alert points at.
func (a *Alert) SetLogPath(path string) {
	a.logPath = path
}

// SetTheme swaps the styles.
func (a *Alert) SetTheme(theme *styles.Theme) {
	if theme != nil {
		a.theme = theme
	}
}

// SetSize records the area the alert is centered in.
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// Visible reports whether the alert is showing.
func (a *Alert) Visible() bool {
	return a.visible
}

// Hide dismisses the alert and drops its messages.
func (a *Alert) Hide() {
	a.visible = false
	a.messages = nil
}

// HandleKey dismisses the alert on esc, enter or q. It reports whether
// the key was consumed.
func (a *Alert) HandleKey(msg tea.KeyMsg) bool {
	if !a.visible {
		return false
	}
	switch msg.String() {
	case "esc", "enter", "q":
		a.Hide()
	}
	return true
}

// View renders the alert box, or "" when hidden.
func (a *Alert) View() string {
	if !a.visible {
		return ""
	}
	width := FrameInnerWidth(a.theme, a.width)
	text := a.theme.NormalContent.Width(width)

	parts := []string{a.theme.Error.Bold(true).Render("! " + a.title), ""}
	for _, m := range a.messages {
		parts = append(parts, text.Render(m))
	}
	if len(a.suggestions) > 0 {
		parts = append(parts, "", a.theme.Key.Render("Suggestions:"))
		for _, s := range a.suggestions {
			parts = append(parts, a.theme.Hint.Render("  * ")+text.Width(width-4).Render(s))
		}
	}
	if a.logPath != "" {
		parts = append(parts, "", a.theme.Hint.Render("Log: "+a.logPath))
	}
	return Frame(a.theme, lipgloss.JoinVertical(lipgloss.Left, parts...), "enter/esc dismiss", a.width, a.height)
}
