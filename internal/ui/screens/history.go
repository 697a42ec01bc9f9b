// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

const modifiedLayout = "2006-01-02 15:04:05"

// HistoryMenu lists saved chats, newest first.
type HistoryMenu struct {
	menuBacked
	store *storage.Store
	log   zerolog.Logger
	err   string
}

// NewHistoryMenu creates the history screen. Call Refresh to fill it.
func NewHistoryMenu(store *storage.Store, theme *styles.Theme, log zerolog.Logger) *HistoryMenu {
	s := &HistoryMenu{
		menuBacked: newMenuBacked("History", theme),
		store:      store,
		log:        log,
	}
	s.menu.EnableFilter()
	s.menu.SetEmptyText("No saved chats found.")
	s.menu.SetItems([]components.MenuItem{backItem()})
	return s
}

// Refresh rereads the saved chats. A read failure is shown in place of
// the list.
func (s *HistoryMenu) Refresh() {
	s.err = ""
	if s.store == nil {
		s.menu.SetItems([]components.MenuItem{backItem()})
		return
	}
	rows, err := s.store.Summaries()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not list saved chats")
		s.err = err.Error()
	}

	items := make([]components.MenuItem, 0, len(rows)+1)
	for _, r := range rows {
		items = append(items, components.MenuItem{
			Label: r.ID + ".json (" + r.Model + ")",
			Detail: []string{
				"Name: " + r.DisplayName(),
				"Created: " + r.Created,
				"Modified: " + r.Modified.Format(modifiedLayout),
			},
			Value: r.ID,
		})
	}
	items = append(items, backItem())
	s.menu.SetItems(items)
}

// SetError shows msg above the list, for example when a chat fails to
// open.
func (s *HistoryMenu) SetError(msg string) {
	s.err = msg
}

// Err returns the visible error.
func (s *HistoryMenu) Err() string {
	return s.err
}

// HandleKey moves the cursor; enter resumes the chosen chat.
func (s *HistoryMenu) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Back) {
		return nav.Navigate(nav.MainMenu)
	}
	it, ok := s.menu.HandleKey(msg)
	if !ok {
		return nil
	}
	if it.Value == backValue {
		return nav.Navigate(nav.MainMenu)
	}
	return nav.ResumeChat(it.Value)
}

// View renders the list.
func (s *HistoryMenu) View() string {
	body := s.menu.View()
	if s.err != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, s.theme.Error.Render(s.err), body)
	}
	return s.frame(body, menuHint+" | type to filter")
}
