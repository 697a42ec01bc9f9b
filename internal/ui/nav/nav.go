// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav defines the application states and the messages screens use
// to move between them. It has no dependencies on the screens themselves so
// every screen package can import it.
package nav

import (
	tea "github.com/charmbracelet/bubbletea"
)

// AppState is the screen the application is showing.
type AppState int

const (
	MainMenu AppState = iota
	ModelSelect
	History
	Chat
	ChatSettings
	Config
	ConfigModelSelect
	ThemeSelect
	Help
	About
)

var stateNames = [...]string{
	MainMenu:          "main_menu",
	ModelSelect:       "model_select",
	History:           "history",
	Chat:              "chat",
	ChatSettings:      "chat_settings",
	Config:            "config",
	ConfigModelSelect: "config_model_select",
	ThemeSelect:       "theme_select",
	Help:              "help",
	About:             "about",
}

// String returns the state name used in logs.
func (s AppState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// NavigateMsg asks the application to switch to another state.
type NavigateMsg struct {
	To AppState
}

// Navigate returns a command that switches to the given state.
func Navigate(to AppState) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// StartChatMsg opens the chat screen. An empty ResumeID starts a new chat
// with Model; otherwise the saved chat is loaded.
type StartChatMsg struct {
	Model    string
	ResumeID string
}

// StartChat returns a command that opens a new chat with the given model.
func StartChat(modelName string) tea.Cmd {
	return func() tea.Msg { return StartChatMsg{Model: modelName} }
}

// ResumeChat returns a command that reopens a saved chat.
func ResumeChat(id string) tea.Cmd {
	return func() tea.Msg { return StartChatMsg{ResumeID: id} }
}

// ModelChosenMsg carries a model picked in the config model submenu.
type ModelChosenMsg struct {
	Model string
}

// ThemeChosenMsg carries a theme picked in the theme submenu.
type ThemeChosenMsg struct {
	Theme string
}

// ConfigSavedMsg reports that the configuration file was written.
type ConfigSavedMsg struct{}

// ChatDeletedMsg reports that the open chat's files were removed.
type ChatDeletedMsg struct {
	ID string
}

// Emit wraps a message in a command.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
