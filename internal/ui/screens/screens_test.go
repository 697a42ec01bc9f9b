// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func keyOf(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(s interface{ HandleKey(tea.KeyMsg) tea.Cmd }, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = s.HandleKey(keyOf(k))
	}
	return cmd
}

func msgOf(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	return cmd()
}

func navTarget(t *testing.T, cmd tea.Cmd) nav.AppState {
	t.Helper()
	msg, ok := msgOf(t, cmd).(nav.NavigateMsg)
	require.True(t, ok, "expected NavigateMsg")
	return msg.To
}

type listGateway struct {
	models []string
}

func (g listGateway) ListModels(context.Context) []string { return g.models }

func (g listGateway) GenerateReply(context.Context, string, []model.Message) (string, error) {
	return "", nil
}

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	root := t.TempDir()
	return storage.NewStore(filepath.Join(root, "history"), filepath.Join(root, "history_details"), zerolog.Nop())
}

// =============================================================================
// MAIN MENU
// =============================================================================

func TestMainMenuTargets(t *testing.T) {
	tests := []struct {
		downs int
		want  nav.AppState
	}{
		{0, nav.ModelSelect},
		{1, nav.History},
		{2, nav.Help},
		{3, nav.About},
		{4, nav.Config},
	}
	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			s := NewMainMenu(styles.DefaultTheme())
			for i := 0; i < tc.downs; i++ {
				s.HandleKey(keyOf("down"))
			}
			assert.Equal(t, tc.want, navTarget(t, s.HandleKey(keyOf("enter"))))
		})
	}
}

func TestMainMenuQuit(t *testing.T) {
	s := NewMainMenu(styles.DefaultTheme())
	cmd := press(s, "up", "enter")
	assert.IsType(t, tea.QuitMsg{}, msgOf(t, cmd))
}

func TestMainMenuView(t *testing.T) {
	s := NewMainMenu(styles.DefaultTheme())
	s.SetSize(100, 40)
	view := s.View()
	for _, want := range []string{"Start Chat", "History", "Help", "About", "Config", "Quit"} {
		assert.Contains(t, view, want)
	}
}

// =============================================================================
// MODEL MENU
// =============================================================================

func TestLoadModels(t *testing.T) {
	msg := LoadModels(listGateway{models: []string{"llama3", "mistral"}}, nav.ModelSelect)()
	assert.Equal(t, ModelsLoadedMsg{For: nav.ModelSelect, Models: []string{"llama3", "mistral"}}, msg)

	empty := LoadModels(nil, nav.ConfigModelSelect)().(ModelsLoadedMsg)
	assert.Equal(t, nav.ConfigModelSelect, empty.For)
	assert.Empty(t, empty.Models)
}

func TestModelMenuDefaultFirst(t *testing.T) {
	s := NewModelMenu(nav.ModelSelect, styles.DefaultTheme())
	s.StartLoading("llama3")
	assert.True(t, s.Loading())
	assert.Contains(t, s.View(), "Loading models...")

	s.SetModels([]string{"mistral", "phi3"})
	assert.False(t, s.Loading())

	items := s.Menu().Visible()
	require.Len(t, items, 4)
	assert.Equal(t, "Use Default Model (llama3)", items[0].Label)
	assert.Equal(t, "Back", items[3].Label)

	msg := msgOf(t, s.HandleKey(keyOf("enter")))
	assert.Equal(t, nav.StartChatMsg{Model: "llama3"}, msg)

	msg = msgOf(t, press(s, "down", "enter"))
	assert.Equal(t, nav.StartChatMsg{Model: "mistral"}, msg)

	assert.Equal(t, nav.MainMenu, navTarget(t, press(s, "end", "enter")))
}

func TestModelMenuEmpty(t *testing.T) {
	s := NewModelMenu(nav.ModelSelect, styles.DefaultTheme())
	s.StartLoading("")
	s.SetModels(nil)

	assert.Contains(t, s.View(), "No models available")
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("enter"))))
}

func TestModelMenuForConfig(t *testing.T) {
	s := NewModelMenu(nav.ConfigModelSelect, styles.DefaultTheme())
	s.StartLoading("llama3")
	s.SetModels([]string{"mistral"})

	require.Len(t, s.Menu().Visible(), 2, "config picker has no default row")
	assert.Equal(t, nav.ModelChosenMsg{Model: "mistral"}, msgOf(t, s.HandleKey(keyOf("enter"))))
	assert.Equal(t, nav.Config, navTarget(t, s.HandleKey(keyOf("esc"))))
}

func TestModelMenuFilter(t *testing.T) {
	s := NewModelMenu(nav.ModelSelect, styles.DefaultTheme())
	s.StartLoading("")
	s.SetModels([]string{"llama3", "mistral", "codellama"})

	press(s, "c", "o", "d")
	assert.Equal(t, nav.StartChatMsg{Model: "codellama"}, msgOf(t, s.HandleKey(keyOf("enter"))))
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistoryEmpty(t *testing.T) {
	s := NewHistoryMenu(newStore(t), styles.DefaultTheme(), zerolog.Nop())
	s.Refresh()

	assert.Contains(t, s.View(), "No saved chats found.")
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("enter"))))
}

func TestHistoryListsAndResumes(t *testing.T) {
	store := newStore(t)
	tr := store.New("llama3")
	require.NoError(t, tr.Append(model.RoleUser, "hello"))
	require.NoError(t, tr.Rename("greetings"))

	s := NewHistoryMenu(store, styles.DefaultTheme(), zerolog.Nop())
	s.Refresh()

	items := s.Menu().Visible()
	require.Len(t, items, 2)
	assert.Equal(t, tr.ID()+".json (llama3)", items[0].Label)
	require.Len(t, items[0].Detail, 3)
	assert.Equal(t, "Name: greetings", items[0].Detail[0])
	assert.Contains(t, items[0].Detail[1], "Created: ")
	assert.Contains(t, items[0].Detail[2], "Modified: ")

	msg := msgOf(t, s.HandleKey(keyOf("enter")))
	assert.Equal(t, nav.StartChatMsg{ResumeID: tr.ID()}, msg)
}

func TestHistoryUnnamedChat(t *testing.T) {
	store := newStore(t)
	tr := store.New("llama3")
	require.NoError(t, tr.Append(model.RoleUser, "hello"))

	s := NewHistoryMenu(store, styles.DefaultTheme(), zerolog.Nop())
	s.Refresh()
	assert.Equal(t, "Name: NO NAME", s.Menu().Visible()[0].Detail[0])
}

func TestHistoryNewestFirst(t *testing.T) {
	store := newStore(t)
	older := store.New("llama3")
	require.NoError(t, older.Append(model.RoleUser, "first"))
	newer := store.New("mistral")
	require.NoError(t, newer.Append(model.RoleUser, "second"))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(store.HistoryDir(), older.ID()+".json"), past, past))

	s := NewHistoryMenu(store, styles.DefaultTheme(), zerolog.Nop())
	s.Refresh()
	items := s.Menu().Visible()
	require.Len(t, items, 3)
	assert.Equal(t, newer.ID(), items[0].Value)
	assert.Equal(t, older.ID(), items[1].Value)
}

func TestHistoryError(t *testing.T) {
	s := NewHistoryMenu(newStore(t), styles.DefaultTheme(), zerolog.Nop())
	s.Refresh()
	s.SetError("could not open chat")

	assert.Equal(t, "could not open chat", s.Err())
	assert.Contains(t, s.View(), "could not open chat")

	s.Refresh()
	assert.Empty(t, s.Err(), "refresh clears the error")
}

func TestHistoryEscGoesBack(t *testing.T) {
	s := NewHistoryMenu(newStore(t), styles.DefaultTheme(), zerolog.Nop())
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("esc"))))
}

// =============================================================================
// CONFIG FORM
// =============================================================================

func loadedForm(t *testing.T) (*ConfigForm, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	s := NewConfigForm(styles.DefaultTheme(), zerolog.Nop())
	s.SetSize(100, 40)
	s.Load(config.Default(), path)
	return s, path
}

func TestConfigFormLoad(t *testing.T) {
	s, _ := loadedForm(t)
	fields := s.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, config.DefaultHost, fields[0].Value())
	assert.Equal(t, "", fields[1].Value())
	assert.Equal(t, "1", fields[2].Value())
	assert.Equal(t, config.DefaultTheme, fields[3].Value())
}

func TestConfigFormInvalidInput(t *testing.T) {
	s, path := loadedForm(t)
	fields := s.Fields()
	fields[0].SetValue("localhost:11434")
	fields[2].SetValue("eleven")

	s.Form().FocusButton(ButtonSave)
	cmd := s.HandleKey(keyOf("enter"))
	assert.Nil(t, cmd)

	assert.Equal(t, "", fields[0].Value(), "invalid host is cleared")
	assert.Equal(t, "must start with http:// or https://", fields[0].Err())
	assert.Equal(t, "", fields[2].Value(), "invalid speed is cleared")
	assert.NotEmpty(t, fields[2].Err())
	assert.NotEmpty(t, s.Status())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written")
	assert.Equal(t, config.DefaultHost, s.Working().OllamaHost)
}

func TestConfigFormSpeedOutOfRange(t *testing.T) {
	s, _ := loadedForm(t)
	s.Fields()[2].SetValue("11")
	s.Form().FocusButton(ButtonSave)

	assert.Nil(t, s.HandleKey(keyOf("enter")))
	assert.Equal(t, "must be between 0 and 10", s.Fields()[2].Err())
}

func TestConfigFormSave(t *testing.T) {
	s, path := loadedForm(t)
	fields := s.Fields()
	fields[0].SetValue("http://gpu-box:11434/")
	s.SetModel("mistral")
	fields[2].SetValue("0")
	s.SetThemeName("")

	s.Form().FocusButton(ButtonSave)
	assert.Equal(t, nav.ConfigSavedMsg{}, msgOf(t, s.HandleKey(keyOf("enter"))))

	w := s.Working()
	assert.Equal(t, "http://gpu-box:11434", w.OllamaHost)
	assert.Equal(t, "mistral", w.ModelName)
	assert.Equal(t, 0, w.TypewriterSpeed)
	assert.Equal(t, config.DefaultTheme, w.Theme)

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434", saved.OllamaHost)
	assert.Equal(t, "mistral", saved.ModelName)
	assert.Equal(t, 0, saved.TypewriterSpeed)
}

func TestConfigFormButtons(t *testing.T) {
	tests := []struct {
		button string
		want   nav.AppState
	}{
		{ButtonSelectModel, nav.ConfigModelSelect},
		{ButtonSelectTheme, nav.ThemeSelect},
		{ButtonBack, nav.MainMenu},
	}
	for _, tc := range tests {
		t.Run(tc.button, func(t *testing.T) {
			s, _ := loadedForm(t)
			s.Form().FocusButton(tc.button)
			assert.Equal(t, tc.want, navTarget(t, s.HandleKey(keyOf("enter"))))
		})
	}

	s, _ := loadedForm(t)
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("esc"))))
}

func TestConfigFormDoesNotTouchSource(t *testing.T) {
	cfg := config.Default()
	s := NewConfigForm(styles.DefaultTheme(), zerolog.Nop())
	s.Load(cfg, filepath.Join(t.TempDir(), "config.toml"))

	s.Fields()[1].SetValue("mistral")
	s.Form().FocusButton(ButtonSave)
	msgOf(t, s.HandleKey(keyOf("enter")))

	assert.Equal(t, "", cfg.ModelName, "the loaded config is cloned")
}

// =============================================================================
// THEME MENU
// =============================================================================

func TestThemeMenu(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amber.toml"), []byte("[[entry]]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "green.json"), []byte("[]"), 0644))

	s := NewThemeMenu(dir, styles.DefaultTheme())
	var names []string
	for _, it := range s.Menu().Visible() {
		names = append(names, it.Label)
	}
	assert.Equal(t, []string{"default", "amber", "green", "Back"}, names)

	s.Refresh("green")
	assert.Equal(t, nav.ThemeChosenMsg{Theme: "green"}, msgOf(t, s.HandleKey(keyOf("enter"))))
	assert.Equal(t, nav.Config, navTarget(t, s.HandleKey(keyOf("esc"))))
	assert.Equal(t, nav.Config, navTarget(t, press(s, "end", "enter")))
}

// =============================================================================
// CHAT SETTINGS
// =============================================================================

func TestChatSettingsRename(t *testing.T) {
	store := newStore(t)
	tr := store.New("llama3")
	require.NoError(t, tr.Append(model.RoleUser, "hello"))

	s := NewChatSettings(styles.DefaultTheme(), zerolog.Nop())
	s.Open(tr)
	s.NameField().SetValue("  trip plans ")

	s.Form().FocusButton(ButtonSaveName)
	assert.Equal(t, nav.Chat, navTarget(t, s.HandleKey(keyOf("enter"))))
	assert.Equal(t, "trip plans", tr.Conversation().Name)

	rows, err := store.Summaries()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "trip plans", rows[0].Name)
}

func TestChatSettingsDelete(t *testing.T) {
	store := newStore(t)
	tr := store.New("llama3")
	require.NoError(t, tr.Append(model.RoleUser, "hello"))
	id := tr.ID()

	s := NewChatSettings(styles.DefaultTheme(), zerolog.Nop())
	s.Open(tr)
	s.Form().FocusButton(ButtonDeleteChat)
	assert.Equal(t, nav.ChatDeletedMsg{ID: id}, msgOf(t, s.HandleKey(keyOf("enter"))))

	ids, err := store.ListSaved()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestChatSettingsBack(t *testing.T) {
	s := NewChatSettings(styles.DefaultTheme(), zerolog.Nop())
	s.Open(newStore(t).New("llama3"))

	assert.Equal(t, nav.Chat, navTarget(t, s.HandleKey(keyOf("esc"))))
	s.Form().FocusButton(ButtonBack)
	assert.Equal(t, nav.Chat, navTarget(t, s.HandleKey(keyOf("enter"))))
}

func TestChatSettingsShowsName(t *testing.T) {
	tr := newStore(t).New("llama3")
	require.NoError(t, tr.Rename("draft"))

	s := NewChatSettings(styles.DefaultTheme(), zerolog.Nop())
	s.Open(tr)
	assert.Equal(t, "draft", s.NameField().Value())
	assert.Contains(t, s.View(), "(not saved yet)")
}

// =============================================================================
// HELP AND ABOUT
// =============================================================================

func TestHelpReturnsToOpener(t *testing.T) {
	s := NewHelp(styles.DefaultTheme())
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("esc"))))

	s.SetReturn(nav.Chat)
	assert.Equal(t, nav.Chat, s.Return())
	assert.Equal(t, nav.Chat, navTarget(t, s.HandleKey(keyOf("q"))))
	assert.Nil(t, s.HandleKey(keyOf("x")))
}

func TestHelpListsChatKeys(t *testing.T) {
	s := NewHelp(styles.DefaultTheme())
	view := s.View()
	for _, want := range []string{"C-w", "C-l", "C-o", "C-e", "M-h", "exit"} {
		assert.Contains(t, view, want)
	}
}

func TestAbout(t *testing.T) {
	s := NewAbout(styles.DefaultTheme())
	s.SetSize(100, 40)
	assert.Contains(t, s.View(), "shellmind - a retro terminal chat for local models")
	assert.Equal(t, nav.MainMenu, navTarget(t, s.HandleKey(keyOf("enter"))))
}
