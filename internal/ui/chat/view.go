// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/shellmind/internal/ui/styles"
	"github.com/jeranaias/shellmind/internal/util"
)

// View renders the chat screen.
func (m *Model) View() string {
	width := max(m.width, 20)
	historyFocused := m.surface.Focus() == FocusHistory

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		m.theme.Border(historyFocused).Width(width-2).Render(m.surface.View()),
		m.renderStatus(width),
		m.theme.Border(!historyFocused).Width(width-2).Render(m.input.View()),
		m.renderHints(width),
	)
}

func (m *Model) renderHeader(width int) string {
	name := m.transcript.Conversation().DisplayName()
	if m.modelName == "" {
		return m.theme.Hint.Render(util.TruncateWidth(name, width))
	}
	modelName := util.TruncateWidth(m.modelName, width/2)
	rest := util.TruncateWidth(" | "+name, width-runewidth.StringWidth(modelName))
	return m.theme.ChatModel.Render(modelName) + m.theme.Hint.Render(rest)
}

func (m *Model) renderStatus(width int) string {
	var parts []string
	switch m.phase {
	case StatusPending:
		parts = append(parts, m.spinner.View()+" "+m.theme.Status.Render(styles.StatusPending))
	case StatusRevealing:
		parts = append(parts, m.spinner.View()+" "+m.theme.Status.Render(styles.StatusRevealing))
	}
	if m.notice != "" {
		parts = append(parts, m.theme.Error.Render(util.TruncateWidth(m.notice, width/2)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderHints(width int) string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, m.theme.Key.Render(h.Key)+" "+m.theme.Hint.Render(h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}
