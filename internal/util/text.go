// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateWidth cuts s to at most maxWidth terminal columns, ending with
// "..." when something was cut and there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadWidth right-pads s with spaces to exactly width columns, truncating
// first if needed.
func PadWidth(s string, width int) string {
	s = TruncateWidth(s, width)
	return runewidth.FillRight(s, width)
}

// WrapWidth hard-wraps every line of s so no line exceeds width columns.
// Wide runes are never split across lines.
func WrapWidth(s string, width int) string {
	if width <= 0 {
		return s
	}

	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		col := 0
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if col+w > width && col > 0 {
				b.WriteByte('\n')
				col = 0
			}
			b.WriteRune(r)
			col += w
		}
	}
	return b.String()
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return len([]rune(s))
}
