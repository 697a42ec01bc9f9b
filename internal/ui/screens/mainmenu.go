// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

const quitValue = ":quit"

// MainMenu is the landing screen.
type MainMenu struct {
	menuBacked
}

// NewMainMenu creates the main menu.
func NewMainMenu(theme *styles.Theme) *MainMenu {
	s := &MainMenu{menuBacked: newMenuBacked("", theme)}
	s.menu.SetItems([]components.MenuItem{
		{Label: "Start Chat", Value: nav.ModelSelect.String()},
		{Label: "History", Value: nav.History.String()},
		{Label: "Help", Value: nav.Help.String()},
		{Label: "About", Value: nav.About.String()},
		{Label: "Config", Value: nav.Config.String()},
		{Label: "Quit", Value: quitValue},
	})
	return s
}

var mainTargets = map[string]nav.AppState{
	nav.ModelSelect.String(): nav.ModelSelect,
	nav.History.String():     nav.History,
	nav.Help.String():        nav.Help,
	nav.About.String():       nav.About,
	nav.Config.String():      nav.Config,
}

// HandleKey moves the cursor and follows the chosen entry.
func (s *MainMenu) HandleKey(msg tea.KeyMsg) tea.Cmd {
	it, ok := s.menu.HandleKey(msg)
	if !ok {
		return nil
	}
	if it.Value == quitValue {
		return tea.Quit
	}
	if to, known := mainTargets[it.Value]; known {
		return nav.Navigate(to)
	}
	return nil
}

// View renders the logo over the menu.
func (s *MainMenu) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left, Logo(s.theme, s.innerWidth()), "", s.menu.View())
	return s.frame(body, "up/down move | enter select | ctrl+c quit")
}

// Logo renders the program banner, narrowing it for small terminals.
func Logo(theme *styles.Theme, width int) string {
	style := theme.Key
	if width >= 44 {
		return style.Render(`     _          _ _           _           _
 ___| |__   ___| | |_ __ ___ (_)_ __   __| |
/ __| '_ \ / _ \ | | '_ ` + "`" + ` _ \| | '_ \ / _` + "`" + ` |
\__ \ | | |  __/ | | | | | | | | | | | (_| |
|___/_| |_|\___|_|_|_| |_| |_|_|_| |_|\__,_|`)
	}
	return style.Render("shellmind")
}
