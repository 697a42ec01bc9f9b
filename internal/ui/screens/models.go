// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// ListTimeout bounds a model listing request.
const ListTimeout = 10 * time.Second

// defaultPrefix marks the "Use Default Model" row.
const defaultPrefix = ":default:"

// ModelsLoadedMsg carries the result of LoadModels to the screen that
// asked for it.
type ModelsLoadedMsg struct {
	For    nav.AppState
	Models []string
}

// LoadModels lists models in the background. A nil gateway or any failure
// yields an empty list.
func LoadModels(gw gateway.Gateway, forState nav.AppState) tea.Cmd {
	return func() tea.Msg {
		if gw == nil {
			return ModelsLoadedMsg{For: forState}
		}
		ctx, cancel := context.WithTimeout(context.Background(), ListTimeout)
		defer cancel()
		return ModelsLoadedMsg{For: forState, Models: gw.ListModels(ctx)}
	}
}

// ModelMenu picks a model. As the chat launcher it opens a chat; as the
// config submenu it reports the choice back to the config form.
type ModelMenu struct {
	menuBacked
	purpose      nav.AppState
	defaultModel string
	loading      bool
}

// NewModelMenu creates a model picker. purpose is nav.ModelSelect or
// nav.ConfigModelSelect.
func NewModelMenu(purpose nav.AppState, theme *styles.Theme) *ModelMenu {
	s := &ModelMenu{menuBacked: newMenuBacked("Select Model", theme), purpose: purpose}
	s.menu.EnableFilter()
	s.menu.SetEmptyText("No models available")
	s.menu.SetItems([]components.MenuItem{backItem()})
	return s
}

// Purpose returns the state this picker serves.
func (s *ModelMenu) Purpose() nav.AppState {
	return s.purpose
}

// StartLoading clears the list and shows a loading caption until
// SetModels is called. The cursor starts at the top of the new list.
func (s *ModelMenu) StartLoading(defaultModel string) {
	s.defaultModel = defaultModel
	s.loading = true
	s.menu.SetFilter("")
	s.menu.SetItems(nil)
}

// Loading reports whether a listing is outstanding.
func (s *ModelMenu) Loading() bool {
	return s.loading
}

// SetModels fills the list. The chat launcher offers the default model
// first when one is configured.
func (s *ModelMenu) SetModels(models []string) {
	s.loading = false

	items := make([]components.MenuItem, 0, len(models)+2)
	if s.purpose == nav.ModelSelect && s.defaultModel != "" {
		items = append(items, components.MenuItem{
			Label:  "Use Default Model (" + s.defaultModel + ")",
			Value:  defaultPrefix + s.defaultModel,
			Pinned: true,
		})
	}
	for _, name := range models {
		items = append(items, components.MenuItem{Label: name, Value: name})
	}
	items = append(items, backItem())
	s.menu.SetItems(items)
}

func (s *ModelMenu) backTarget() nav.AppState {
	if s.purpose == nav.ConfigModelSelect {
		return nav.Config
	}
	return nav.MainMenu
}

// HandleKey moves the cursor and acts on the chosen model.
func (s *ModelMenu) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Back) {
		return nav.Navigate(s.backTarget())
	}
	it, ok := s.menu.HandleKey(msg)
	if !ok {
		return nil
	}

	if it.Value == backValue {
		return nav.Navigate(s.backTarget())
	}
	name := strings.TrimPrefix(it.Value, defaultPrefix)

	if s.purpose == nav.ConfigModelSelect {
		return nav.Emit(nav.ModelChosenMsg{Model: name})
	}
	return nav.StartChat(name)
}

// View renders the picker.
func (s *ModelMenu) View() string {
	if s.loading {
		return s.frame(s.theme.Title.Render("Select Model")+"\n"+s.theme.Hint.Render("Loading models..."), "esc back")
	}
	return s.frame(s.menu.View(), menuHint+" | type to filter")
}
