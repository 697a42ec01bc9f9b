// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Config form buttons.
const (
	ButtonSelectModel = "select_model"
	ButtonSelectTheme = "select_theme"
	ButtonSave        = "save"
	ButtonBack        = "back"
)

// ConfigForm edits a working copy of the configuration. Nothing changes
// on disk or in the running program until Save succeeds.
type ConfigForm struct {
	base
	form *components.Form
	log  zerolog.Logger

	working *config.Config
	path    string

	host      *components.Field
	model     *components.Field
	speed     *components.Field
	themeName *components.Field

	status string
}

// NewConfigForm creates the config screen. Call Load before showing it.
func NewConfigForm(theme *styles.Theme, log zerolog.Logger) *ConfigForm {
	s := &ConfigForm{base: newBase(theme), log: log, working: config.Default()}
	s.build()
	return s
}

func (s *ConfigForm) build() {
	s.form = components.NewForm(s.theme)
	s.host = s.form.AddField("Ollama API url: ", "")
	s.model = s.form.AddField("Default Model: ", "")
	s.speed = s.form.AddField("Typewriter Speed (0-10): ", "")
	s.themeName = s.form.AddField("Theme: ", "")
	s.host.SetPlaceholder(config.DefaultHost)
	s.themeName.SetPlaceholder(config.DefaultTheme)
	s.form.AddButton(ButtonSelectModel, "Select Model")
	s.form.AddButton(ButtonSelectTheme, "Select Theme")
	s.form.AddButton(ButtonSave, "Save")
	s.form.AddButton(ButtonBack, "Back")
}

// Load copies cfg into the form. path is where Save writes.
func (s *ConfigForm) Load(cfg *config.Config, path string) tea.Cmd {
	s.working = cfg.Clone()
	s.path = path
	s.status = ""
	s.host.SetValue(s.working.OllamaHost)
	s.model.SetValue(s.working.ModelName)
	s.speed.SetValue(strconv.Itoa(s.working.TypewriterSpeed))
	s.themeName.SetValue(s.working.Theme)
	return s.form.SetFocus(0)
}

// Working returns the edited copy. It reflects the fields only after a
// successful Save.
func (s *ConfigForm) Working() *config.Config {
	return s.working
}

// SetModel fills the model field from the model submenu.
func (s *ConfigForm) SetModel(name string) {
	s.model.SetValue(name)
}

// SetThemeName fills the theme field from the theme submenu.
func (s *ConfigForm) SetThemeName(name string) {
	s.themeName.SetValue(name)
}

// Fields exposes the inputs in display order: host, model, speed, theme.
func (s *ConfigForm) Fields() []*components.Field {
	return s.form.Fields()
}

// Form exposes the underlying form.
func (s *ConfigForm) Form() *components.Form {
	return s.form
}

// Status returns the last save error, if any.
func (s *ConfigForm) Status() string {
	return s.status
}

// SetSize records the terminal size and resizes the fields.
func (s *ConfigForm) SetSize(width, height int) {
	s.base.SetSize(width, height)
	s.form.SetWidth(s.innerWidth())
}

// SetTheme swaps the styles.
func (s *ConfigForm) SetTheme(theme *styles.Theme) {
	s.base.SetTheme(theme)
	s.form.SetTheme(s.theme)
}

// HandleKey edits the focused field or presses the focused button.
func (s *ConfigForm) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Back) {
		return nav.Navigate(nav.MainMenu)
	}
	pressed, cmd := s.form.HandleKey(msg)
	switch pressed {
	case ButtonSelectModel:
		return nav.Navigate(nav.ConfigModelSelect)
	case ButtonSelectTheme:
		return nav.Navigate(nav.ThemeSelect)
	case ButtonSave:
		return s.save()
	case ButtonBack:
		return nav.Navigate(nav.MainMenu)
	}
	return cmd
}

// save validates every field into a fresh copy and writes it. Invalid
// fields are cleared and captioned; nothing is written then.
func (s *ConfigForm) save() tea.Cmd {
	next := s.working.Clone()
	valid := true

	if err := next.SetHost(s.host.Value()); err != nil {
		s.host.SetError(fieldMessage(err))
		valid = false
	}
	if err := next.SetSpeedString(s.speed.Value()); err != nil {
		s.speed.SetError(fieldMessage(err))
		valid = false
	}
	next.SetModel(s.model.Value())
	next.SetTheme(s.themeName.Value())

	if !valid {
		s.status = "Fix the highlighted fields."
		return nil
	}

	if err := config.SaveTOML(next, s.path); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("config save failed")
		s.status = "Could not save: " + err.Error()
		return nil
	}

	s.working = next
	s.status = ""
	s.log.Info().Str("path", s.path).Msg("config saved")
	return nav.Emit(nav.ConfigSavedMsg{})
}

// View renders the form.
func (s *ConfigForm) View() string {
	parts := []string{s.theme.Title.Render("Config"), s.form.View()}
	if s.status != "" {
		parts = append(parts, "", s.theme.Error.Render(s.status))
	}
	return s.frame(lipgloss.JoinVertical(lipgloss.Left, parts...), "tab/up/down move | enter select | esc back")
}
