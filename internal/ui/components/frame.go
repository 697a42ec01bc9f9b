// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/styles"
	"github.com/jeranaias/shellmind/internal/util"
)

// Frame draws body in the theme's box with a hint line under it, centered
// in a width x height area. A zero area skips the centering.
func Frame(theme *styles.Theme, body, hint string, width, height int) string {
	if theme == nil {
		theme = styles.DefaultTheme()
	}

	content := body
	if hint != "" {
		inner := lipgloss.Width(body)
		if width > 0 {
			inner = max(inner, FrameInnerWidth(theme, width))
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			body,
			"",
			theme.Hint.Render(util.TruncateWidth(hint, inner)),
		)
	}

	box := theme.Box.Render(content)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// FrameInnerWidth is the content width a frame leaves inside a terminal of
// the given width. Frames use at most 72 columns of content.
func FrameInnerWidth(theme *styles.Theme, width int) int {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	w := width - theme.Box.GetHorizontalFrameSize() - 2
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// FrameInnerHeight is the content height a frame leaves inside a terminal
// of the given height, reserving the hint line.
func FrameInnerHeight(theme *styles.Theme, height int) int {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	h := height - theme.Box.GetVerticalFrameSize() - 2
	if h < 3 {
		h = 3
	}
	return h
}
