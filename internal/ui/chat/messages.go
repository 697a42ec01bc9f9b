// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the chat screen's scheduler. Session ties it to the screen
// that scheduled it; ticks for any other session are dropped.
type TickMsg struct {
	Session string
	Time    time.Time
}

func tickCmd(session string) tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}
