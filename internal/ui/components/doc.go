// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable widgets the shellmind screens are
built from.

# Widgets

Menu (menu.go) - Vertical list with a highlighted row, optional detail lines
and type-to-filter. Pinned rows such as Back stay listed while filtering.

Field and Form (field.go, form.go) - Labelled single-line inputs followed by
a row of buttons. Tab cycles focus; enter on a button reports its ID.

Alert (alert.go) - Dismissible message box drawn over the current screen.

Frame (frame.go) - Bordered, centered box with a hint line. Every full
screen renders through it.

# Filtering

FuzzyMatch and Rank (fuzzy.go) score a query against labels. Consecutive
characters and word starts score higher; an empty query keeps the original
order.

# Usage

	menu := components.NewMenu("Select Model", theme)
	menu.EnableFilter()
	menu.SetItems(items)

	if item, ok := menu.HandleKey(msg); ok {
		// item was chosen with enter
	}

Widgets take a *styles.Theme and re-style on SetTheme. None of them issue
navigation; screens translate their results into nav messages.
*/
package components
