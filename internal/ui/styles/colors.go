// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// CHROME COLORS
// =============================================================================

// Chrome colors style the parts of the UI that palettes do not cover
// (titles, key hints, the about box). They adapt to light/dark terminals.
var (
	// Purple - titles and brand
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Cyan - accents and key names in hints
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Rose - inline validation errors
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// TextMuted - hints and secondary text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
)

// =============================================================================
// PALETTE COLOR NAMES
// =============================================================================

// ColorDefault leaves the terminal's own color in place.
const ColorDefault = "default"

// namedColors maps palette color names onto the 16 ANSI slots.
var namedColors = map[string]string{
	"black":         "0",
	"dark red":      "1",
	"dark green":    "2",
	"brown":         "3",
	"dark blue":     "4",
	"dark magenta":  "5",
	"dark cyan":     "6",
	"light gray":    "7",
	"dark gray":     "8",
	"light red":     "9",
	"light green":   "10",
	"yellow":        "11",
	"light blue":    "12",
	"light magenta": "13",
	"light cyan":    "14",
	"white":         "15",
}

// ParseColor converts a palette color spec into a lipgloss color.
//
// Accepted forms: "" or "default" (terminal default, ok=false), an ANSI
// name such as "light cyan", a "#rrggbb" hex value, a 0-255 index, or an
// "hNNN" 256-color index.
func ParseColor(spec string) (color lipgloss.Color, ok bool, err error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" || s == ColorDefault {
		return "", false, nil
	}
	if code, found := namedColors[s]; found {
		return lipgloss.Color(code), true, nil
	}
	if strings.HasPrefix(s, "#") {
		if !isHex(s[1:]) || (len(s) != 4 && len(s) != 7) {
			return "", false, fmt.Errorf("invalid hex color %q", spec)
		}
		return lipgloss.Color(s), true, nil
	}
	idx := strings.TrimPrefix(s, "h")
	n, convErr := strconv.Atoi(idx)
	if convErr != nil || n < 0 || n > 255 {
		return "", false, fmt.Errorf("unknown color %q", spec)
	}
	return lipgloss.Color(strconv.Itoa(n)), true, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return s != ""
}

// applyAttributes applies a comma-separated attribute list to a style.
func applyAttributes(style lipgloss.Style, attrs string) (lipgloss.Style, error) {
	for _, raw := range strings.Split(attrs, ",") {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
		case "bold":
			style = style.Bold(true)
		case "italics", "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "standout", "reverse":
			style = style.Reverse(true)
		case "blink":
			style = style.Blink(true)
		case "faint":
			style = style.Faint(true)
		case "strikethrough":
			style = style.Strikethrough(true)
		default:
			return style, fmt.Errorf("unknown attribute %q", strings.TrimSpace(raw))
		}
	}
	return style, nil
}
