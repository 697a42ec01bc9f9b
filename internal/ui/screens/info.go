// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/chat"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// dismiss is true for the keys that close a static page.
func dismiss(msg tea.KeyMsg, keys KeyMap) bool {
	if key.Matches(msg, keys.Back) {
		return true
	}
	switch msg.String() {
	case "enter", "q":
		return true
	}
	return false
}

// Help lists the chat key bindings. It returns to whichever screen opened
// it.
type Help struct {
	base
	chatKeys chat.KeyMap
	back     nav.AppState
}

// NewHelp creates the help page.
func NewHelp(theme *styles.Theme) *Help {
	return &Help{base: newBase(theme), chatKeys: chat.DefaultKeyMap(), back: nav.MainMenu}
}

// SetReturn sets the screen esc goes back to.
func (s *Help) SetReturn(to nav.AppState) {
	s.back = to
}

// Return is the screen esc goes back to.
func (s *Help) Return() nav.AppState {
	return s.back
}

// HandleKey closes the page.
func (s *Help) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if dismiss(msg, s.keys) {
		return nav.Navigate(s.back)
	}
	return nil
}

// View renders the bindings in groups.
func (s *Help) View() string {
	keyStyle := s.theme.Key.Width(12)
	descStyle := s.theme.NormalContent

	lines := []string{s.theme.Title.Render("Help"), s.theme.Hint.Render("In a chat:")}
	for _, group := range s.chatKeys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		s.theme.Hint.Render("In menus:"),
		keyStyle.Render("up/down")+descStyle.Render("move"),
		keyStyle.Render("enter")+descStyle.Render("select"),
		keyStyle.Render("esc")+descStyle.Render("back"),
		keyStyle.Render("type")+descStyle.Render("filter models, chats and themes"),
		"",
		descStyle.Render("Type exit in a chat to leave the program."),
	)
	return s.frame(lipgloss.JoinVertical(lipgloss.Left, lines...), "esc back")
}

// aboutText is shown under the logo.
var aboutText = []string{
	"shellmind - a retro terminal chat for local models",
	"",
	"Talk to any model served by Ollama without leaving the terminal.",
	"Replies type themselves out one character at a time, the way",
	"text used to arrive over a slow line. Every chat is saved to disk",
	"and can be picked up again from History.",
	"",
	"Colors come from theme files in the themes directory.",
}

// About is the static about page.
type About struct {
	base
}

// NewAbout creates the about page.
func NewAbout(theme *styles.Theme) *About {
	return &About{base: newBase(theme)}
}

// HandleKey closes the page.
func (s *About) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if dismiss(msg, s.keys) {
		return nav.Navigate(nav.MainMenu)
	}
	return nil
}

// View renders the logo and blurb.
func (s *About) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		Logo(s.theme, s.innerWidth()),
		"",
		s.theme.NormalContent.Render(strings.Join(aboutText, "\n")),
	)
	return s.frame(body, "esc back")
}
