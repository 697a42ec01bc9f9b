// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides palettes, themes and spinner motifs for the shellmind
terminal UI.

# Palettes (palette.go)

A palette is an ordered list of named entries:

	[[palette]]
	name = "ai_message"
	foreground = "light cyan"
	background = ""
	attributes = "bold"

Theme files live in the themes directory as <name>.toml or <name>.json
(the JSON form is {"palette": [...]}). LoadPalette merges a file's entries
over DefaultPalette; an entry replaces the default of the same name and new
names are appended. The name "default", a missing file, and an invalid file
all resolve to DefaultPalette.

# Colors (colors.go)

Palette colors are ANSI names ("dark red", "light cyan", ...), "#rrggbb"
hex values, or 256-color indexes. An empty color or "default" keeps the
terminal's own color. Chrome colors that palettes do not control use
Lip Gloss AdaptiveColor.

# Themes (theme.go)

NewTheme turns a palette into lipgloss styles. Border(focused) selects the
pane border for the focus state.

# Spinners (animations.go)

PendingSpinner runs while a request is outstanding and RevealingSpinner
while the typewriter is revealing a reply.
*/
package styles
