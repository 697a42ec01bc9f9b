// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Chat settings buttons.
const (
	ButtonSaveName   = "save_name"
	ButtonDeleteChat = "delete_chat"
)

// ChatSettings renames or deletes the open chat.
type ChatSettings struct {
	base
	form   *components.Form
	name   *components.Field
	log    zerolog.Logger
	chat   *storage.Transcript
	status string
}

// NewChatSettings creates the overlay. Call Open before showing it.
func NewChatSettings(theme *styles.Theme, log zerolog.Logger) *ChatSettings {
	s := &ChatSettings{base: newBase(theme), log: log}
	s.form = components.NewForm(s.theme)
	s.name = s.form.AddField("Chat Name: ", "")
	s.name.SetPlaceholder("NO NAME")
	s.form.AddButton(ButtonSaveName, "Save Name")
	s.form.AddButton(ButtonDeleteChat, "Delete Chat")
	s.form.AddButton(ButtonBack, "Back")
	return s
}

// Open points the overlay at t and focuses the name field.
func (s *ChatSettings) Open(t *storage.Transcript) tea.Cmd {
	s.chat = t
	s.status = ""
	name := ""
	if t != nil {
		name = t.Conversation().Name
	}
	s.name.SetValue(name)
	return s.form.SetFocus(0)
}

// NameField exposes the name input.
func (s *ChatSettings) NameField() *components.Field {
	return s.name
}

// Form exposes the underlying form.
func (s *ChatSettings) Form() *components.Form {
	return s.form
}

// Status returns the last error, if any.
func (s *ChatSettings) Status() string {
	return s.status
}

// SetSize records the terminal size and resizes the field.
func (s *ChatSettings) SetSize(width, height int) {
	s.base.SetSize(width, height)
	s.form.SetWidth(s.innerWidth())
}

// SetTheme swaps the styles.
func (s *ChatSettings) SetTheme(theme *styles.Theme) {
	s.base.SetTheme(theme)
	s.form.SetTheme(s.theme)
}

// HandleKey edits the name or presses the focused button.
func (s *ChatSettings) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Back) {
		return nav.Navigate(nav.Chat)
	}
	pressed, cmd := s.form.HandleKey(msg)
	switch pressed {
	case ButtonSaveName:
		return s.rename()
	case ButtonDeleteChat:
		return s.delete()
	case ButtonBack:
		return nav.Navigate(nav.Chat)
	}
	return cmd
}

func (s *ChatSettings) rename() tea.Cmd {
	if s.chat == nil {
		return nav.Navigate(nav.Chat)
	}
	if err := s.chat.Rename(strings.TrimSpace(s.name.Value())); err != nil {
		s.status = "Could not rename: " + err.Error()
		return nil
	}
	return nav.Navigate(nav.Chat)
}

func (s *ChatSettings) delete() tea.Cmd {
	if s.chat == nil {
		return nav.Navigate(nav.MainMenu)
	}
	id := s.chat.ID()
	if err := s.chat.Delete(); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("delete failed")
		s.status = "Could not delete: " + err.Error()
		return nil
	}
	return nav.Emit(nav.ChatDeletedMsg{ID: id})
}

// View renders the overlay.
func (s *ChatSettings) View() string {
	parts := []string{s.theme.Title.Render("Chat Settings")}
	if s.chat != nil {
		id := s.chat.ID()
		if id == "" {
			id = "(not saved yet)"
		}
		parts = append(parts, s.theme.Hint.Render("Chat: "+id), "")
	}
	parts = append(parts, s.form.View())
	if s.status != "" {
		parts = append(parts, "", s.theme.Error.Render(s.status))
	}
	return s.frame(lipgloss.JoinVertical(lipgloss.Left, parts...), "tab move | enter select | esc back to chat")
}
