// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// ThemeMenu lists the theme files plus the built-in default.
type ThemeMenu struct {
	menuBacked
	dir string
}

// NewThemeMenu creates the theme picker over dir.
func NewThemeMenu(dir string, theme *styles.Theme) *ThemeMenu {
	s := &ThemeMenu{menuBacked: newMenuBacked("Select Theme", theme), dir: dir}
	s.menu.EnableFilter()
	s.Refresh()
	return s
}

// Refresh rereads the themes directory and puts the cursor on current.
func (s *ThemeMenu) Refresh(current ...string) {
	names := styles.ListThemes(s.dir)
	items := make([]components.MenuItem, 0, len(names)+1)
	for _, n := range names {
		items = append(items, components.MenuItem{Label: n, Value: n})
	}
	items = append(items, backItem())
	s.menu.SetFilter("")
	s.menu.SetItems(items)
	if len(current) > 0 {
		s.menu.Select(current[0])
	}
}

// HandleKey moves the cursor; enter reports the chosen theme.
func (s *ThemeMenu) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Back) {
		return nav.Navigate(nav.Config)
	}
	it, ok := s.menu.HandleKey(msg)
	if !ok {
		return nil
	}
	if it.Value == backValue {
		return nav.Navigate(nav.Config)
	}
	return nav.Emit(nav.ThemeChosenMsg{Theme: it.Value})
}

// View renders the picker.
func (s *ThemeMenu) View() string {
	return s.frame(s.menu.View(), menuHint+" | type to filter")
}
