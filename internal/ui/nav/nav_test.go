// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppStateString(t *testing.T) {
	assert.Equal(t, "main_menu", MainMenu.String())
	assert.Equal(t, "config_model_select", ConfigModelSelect.String())
	assert.Equal(t, "about", About.String())
	assert.Equal(t, "unknown", AppState(99).String())
	assert.Equal(t, "unknown", AppState(-1).String())
}

func TestCommandsProduceMessages(t *testing.T) {
	assert.Equal(t, NavigateMsg{To: History}, Navigate(History)())
	assert.Equal(t, StartChatMsg{Model: "llama3"}, StartChat("llama3")())
	assert.Equal(t, StartChatMsg{ResumeID: "chat_1"}, ResumeChat("chat_1")())
	assert.Equal(t, ConfigSavedMsg{}, Emit(ConfigSavedMsg{})())
}
