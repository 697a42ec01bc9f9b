// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/dispatch"
	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/chat"
	"github.com/jeranaias/shellmind/internal/ui/components"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/screens"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// =============================================================================
// SCREEN CONTRACT
// =============================================================================

// Screen is what the application needs from every menu and page.
type Screen interface {
	View() string
	HandleKey(tea.KeyMsg) tea.Cmd
	SetSize(width, height int)
	SetTheme(theme *styles.Theme)
}

// GatewayFactory builds a gateway for a configuration.
type GatewayFactory func(cfg *config.Config, log zerolog.Logger) (gateway.Gateway, error)

// Deps are the long-lived collaborators the application is built from.
type Deps struct {
	Config  *config.Config
	Paths   config.Paths
	Store   *storage.Store
	Theme   *styles.Theme
	Log     zerolog.Logger
	Gateway gateway.Gateway

	// NewGateway rebuilds the gateway after the config is saved. Nil keeps
	// the current one.
	NewGateway GatewayFactory

	// Watcher refreshes the history menu on disk changes. Optional.
	Watcher *storage.Watcher

	// Warnings are shown in an alert over the first screen.
	Warnings []string
}

// historyChangedMsg reports a change in the history directories.
type historyChangedMsg struct{}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the root Bubble Tea model. It owns every screen and at most one
// chat screen.
type Model struct {
	state nav.AppState

	cfg        *config.Config
	paths      config.Paths
	store      *storage.Store
	theme      *styles.Theme
	log        zerolog.Logger
	baseLog    zerolog.Logger
	gw         gateway.Gateway
	dispatcher *dispatch.Dispatcher
	newGateway GatewayFactory
	watcher    *storage.Watcher

	width  int
	height int

	mainMenu     *screens.MainMenu
	models       *screens.ModelMenu
	configModels *screens.ModelMenu
	history      *screens.HistoryMenu
	configForm   *screens.ConfigForm
	themes       *screens.ThemeMenu
	settings     *screens.ChatSettings
	help         *screens.Help
	about        *screens.About
	alert        *components.Alert

	chat *chat.Model
}

// New builds the application on the main menu.
func New(d Deps) *Model {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := d.Theme
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	log := d.Log.With().Str("component", "app").Logger()

	m := &Model{
		state:        nav.MainMenu,
		cfg:          cfg,
		paths:        d.Paths,
		store:        d.Store,
		theme:        theme,
		log:          log,
		baseLog:      d.Log,
		gw:           d.Gateway,
		newGateway:   d.NewGateway,
		watcher:      d.Watcher,
		mainMenu:     screens.NewMainMenu(theme),
		models:       screens.NewModelMenu(nav.ModelSelect, theme),
		configModels: screens.NewModelMenu(nav.ConfigModelSelect, theme),
		history:      screens.NewHistoryMenu(d.Store, theme, d.Log),
		configForm:   screens.NewConfigForm(theme, d.Log),
		themes:       screens.NewThemeMenu(d.Paths.ThemesDir, theme),
		settings:     screens.NewChatSettings(theme, d.Log),
		help:         screens.NewHelp(theme),
		about:        screens.NewAbout(theme),
		alert:        components.NewAlert(theme, "Started with problems"),
	}
	if m.gw != nil {
		m.dispatcher = dispatch.New(m.gw, cfg.Timeout(), d.Log)
	}

	m.alert.SetLogPath(d.Paths.LogFile)
	for _, w := range d.Warnings {
		m.alert.Add(w)
	}
	return m
}

// Init starts watching the history directory.
func (m *Model) Init() tea.Cmd {
	return m.waitForChanges()
}

// State returns the current application state.
func (m *Model) State() nav.AppState {
	return m.state
}

// Chat returns the open chat screen, or nil.
func (m *Model) Chat() *chat.Model {
	return m.chat
}

// Config returns the live configuration.
func (m *Model) Config() *config.Config {
	return m.cfg
}

// Alert returns the startup alert.
func (m *Model) Alert() *components.Alert {
	return m.alert
}

// screen returns the screen for a non-chat state.
func (m *Model) screen(s nav.AppState) Screen {
	switch s {
	case nav.ModelSelect:
		return m.models
	case nav.ConfigModelSelect:
		return m.configModels
	case nav.History:
		return m.history
	case nav.Config:
		return m.configForm
	case nav.ThemeSelect:
		return m.themes
	case nav.ChatSettings:
		return m.settings
	case nav.Help:
		return m.help
	case nav.About:
		return m.about
	default:
		return m.mainMenu
	}
}

func (m *Model) allScreens() []Screen {
	return []Screen{
		m.mainMenu, m.models, m.configModels, m.history, m.configForm,
		m.themes, m.settings, m.help, m.about,
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes a message to the application or the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case chat.TickMsg:
		if m.chat == nil {
			return m, nil
		}
		return m, m.chat.HandleTick(msg)

	case nav.NavigateMsg:
		return m, m.navigate(msg.To)

	case nav.StartChatMsg:
		return m, m.openChat(msg)

	case screens.ModelsLoadedMsg:
		m.modelsLoaded(msg)
		return m, nil

	case nav.ModelChosenMsg:
		m.configForm.SetModel(msg.Model)
		return m, m.navigate(nav.Config)

	case nav.ThemeChosenMsg:
		m.configForm.SetThemeName(msg.Theme)
		return m, m.navigate(nav.Config)

	case nav.ConfigSavedMsg:
		m.applyConfig(m.configForm.Working())
		return m, m.navigate(nav.MainMenu)

	case nav.ChatDeletedMsg:
		m.log.Info().Str("id", msg.ID).Msg("chat deleted")
		m.closeChat()
		return m, m.navigate(nav.MainMenu)

	case historyChangedMsg:
		if m.state == nav.History {
			m.history.Refresh()
		}
		return m, m.waitForChanges()
	}

	if m.state == nav.Chat && m.chat != nil {
		return m, m.chat.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.closeChat()
		return tea.Quit
	}
	if m.alert.HandleKey(msg) {
		return nil
	}
	if m.state == nav.Chat && m.chat != nil {
		return m.chat.HandleKey(msg)
	}
	return m.screen(m.state).HandleKey(msg)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	for _, s := range m.allScreens() {
		s.SetSize(width, height)
	}
	m.alert.SetSize(width, height)
	if m.chat != nil {
		m.chat.SetSize(width, height)
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

// keepsChat reports whether a chat stays open in state s.
func keepsChat(s nav.AppState) bool {
	return s == nav.Chat || s == nav.ChatSettings || s == nav.Help
}

func (m *Model) navigate(to nav.AppState) tea.Cmd {
	from := m.state
	var cmd tea.Cmd

	if !keepsChat(to) || (to == nav.Help && from != nav.Chat) {
		m.closeChat()
	}

	switch to {
	case nav.Chat, nav.ChatSettings:
		if m.chat == nil || !m.chat.Alive() {
			to = nav.MainMenu
			break
		}
		if to == nav.ChatSettings {
			cmd = m.settings.Open(m.chat.Transcript())
		}
	case nav.ModelSelect:
		m.models.StartLoading(m.cfg.ModelName)
		cmd = screens.LoadModels(m.gw, nav.ModelSelect)
	case nav.ConfigModelSelect:
		m.configModels.StartLoading("")
		cmd = screens.LoadModels(m.gw, nav.ConfigModelSelect)
	case nav.History:
		m.history.Refresh()
	case nav.Config:
		if from != nav.ConfigModelSelect && from != nav.ThemeSelect {
			cmd = m.configForm.Load(m.cfg, m.paths.ConfigFile)
		}
	case nav.ThemeSelect:
		m.themes.Refresh(m.cfg.Theme)
	case nav.Help:
		if from != nav.Help {
			m.help.SetReturn(from)
		}
	}

	m.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("navigate")
	m.state = to
	return cmd
}

func (m *Model) modelsLoaded(msg screens.ModelsLoadedMsg) {
	target := m.models
	if msg.For == nav.ConfigModelSelect {
		target = m.configModels
	}
	if !target.Loading() {
		return
	}
	m.log.Debug().Str("for", msg.For.String()).Int("models", len(msg.Models)).Msg("models loaded")
	target.SetModels(msg.Models)
}

// =============================================================================
// CHAT LIFECYCLE
// =============================================================================

func (m *Model) openChat(msg nav.StartChatMsg) tea.Cmd {
	if m.store == nil {
		return m.navigate(nav.MainMenu)
	}

	var t *storage.Transcript
	if msg.ResumeID != "" {
		opened, err := m.store.Open(msg.ResumeID)
		if err != nil {
			m.log.Warn().Err(err).Str("id", msg.ResumeID).Msg("could not open chat")
			cmd := m.navigate(nav.History)
			m.history.SetError("Could not open chat: " + err.Error())
			return cmd
		}
		t = opened
		if t.Conversation().Model == "" {
			t.Conversation().Model = m.cfg.ModelName
		}
	} else {
		name := msg.Model
		if name == "" {
			name = m.cfg.ModelName
		}
		t = m.store.New(name)
	}

	m.closeChat()
	m.chat = chat.New(t, chat.Options{
		Dispatcher: m.dispatcher,
		Config:     m.cfg,
		Theme:      m.theme,
		Log:        m.baseLog,
	})
	m.chat.SetSize(m.width, m.height)
	m.state = nav.Chat
	return m.chat.Init()
}

func (m *Model) closeChat() {
	if m.chat == nil {
		return
	}
	m.chat.Close()
	m.chat = nil
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// applyConfig makes a saved configuration live: the theme is reloaded and
// the gateway rebuilt. Failures keep the previous theme or gateway and are
// shown in the alert.
func (m *Model) applyConfig(saved *config.Config) {
	if saved == nil {
		return
	}
	*m.cfg = *saved

	theme, err := styles.LoadTheme(m.paths.ThemesDir, m.cfg.Theme)
	if err != nil {
		m.log.Warn().Err(err).Str("theme", m.cfg.Theme).Msg("theme load failed")
		m.alert.Add("Theme " + m.cfg.Theme + ": " + err.Error())
	}
	*m.theme = *theme
	m.theme.SetSize(m.width, m.height)
	for _, s := range m.allScreens() {
		s.SetTheme(m.theme)
	}
	m.alert.SetTheme(m.theme)

	if m.newGateway != nil {
		gw, err := m.newGateway(m.cfg, m.baseLog)
		if err != nil {
			m.log.Error().Err(err).Msg("gateway rebuild failed")
			m.alert.Add("Model server: " + err.Error())
		} else {
			m.gw = gw
			m.dispatcher = dispatch.New(gw, m.cfg.Timeout(), m.baseLog)
		}
	}
	m.log.Info().
		Str("host", m.cfg.OllamaHost).
		Str("model", m.cfg.ModelName).
		Int("speed", m.cfg.TypewriterSpeed).
		Str("theme", m.cfg.Theme).
		Msg("config applied")
}

// =============================================================================
// HISTORY WATCH
// =============================================================================

func (m *Model) waitForChanges() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return historyChangedMsg{}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen, or the alert over it.
func (m *Model) View() string {
	if m.alert.Visible() {
		return m.alert.View()
	}
	if m.state == nav.Chat && m.chat != nil {
		return m.chat.View()
	}
	return m.screen(m.state).View()
}
