// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// backValue marks the Back row of a menu. Model and theme names never
// start with a colon.
const backValue = ":back"

// menuHint is the footer shown under every menu.
const menuHint = "up/down move | enter select | esc back"

// KeyMap holds the bindings shared by every menu screen.
type KeyMap struct {
	Back key.Binding
}

// DefaultKeyMap returns the menu bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// base carries the size and theme every screen needs to draw its frame.
type base struct {
	theme  *styles.Theme
	keys   KeyMap
	width  int
	height int
}

func newBase(theme *styles.Theme) base {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return base{theme: theme, keys: DefaultKeyMap()}
}

// SetSize records the terminal size.
func (b *base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// SetTheme swaps the styles.
func (b *base) SetTheme(theme *styles.Theme) {
	if theme != nil {
		b.theme = theme
	}
}

func (b *base) innerWidth() int {
	return components.FrameInnerWidth(b.theme, b.width)
}

func (b *base) innerHeight() int {
	return components.FrameInnerHeight(b.theme, b.height)
}

func (b *base) frame(body, hint string) string {
	return components.Frame(b.theme, body, hint, b.width, b.height)
}

// menuBacked is a screen drawn around a single menu.
type menuBacked struct {
	base
	menu *components.Menu
}

func newMenuBacked(title string, theme *styles.Theme) menuBacked {
	b := newBase(theme)
	return menuBacked{base: b, menu: components.NewMenu(title, b.theme)}
}

// SetSize records the terminal size and resizes the menu.
func (s *menuBacked) SetSize(width, height int) {
	s.base.SetSize(width, height)
	s.menu.SetSize(s.innerWidth(), s.innerHeight())
}

// SetTheme swaps the styles.
func (s *menuBacked) SetTheme(theme *styles.Theme) {
	s.base.SetTheme(theme)
	s.menu.SetTheme(s.theme)
}

// Menu exposes the underlying menu.
func (s *menuBacked) Menu() *components.Menu {
	return s.menu
}

func backItem() components.MenuItem {
	return components.MenuItem{Label: "Back", Value: backValue, Pinned: true}
}

// fieldMessage returns the user-facing part of a config validation error.
func fieldMessage(err error) string {
	var ve config.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
