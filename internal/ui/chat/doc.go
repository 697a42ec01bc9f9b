// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the chat screen.

The screen is a history pane (Surface) above an input box. Submitting a
message appends and persists it, then hands the history to a
dispatch.Dispatcher. A single 50ms tick, tagged with the screen's session
ID, polls the pending request and drives a Scheduler that owns two tasks:

	animator  reveals the reply one rune per step (Typewriter)
	status    advances the status spinner

When the reply arrives it is saved, a "AIm: " entry is added and the
Typewriter fills it in. Errors are shown as "AIm: Error: <detail>".

Ticks and results that carry another session ID are dropped, so a screen
that was closed with a request in flight never touches the UI again.

# Focus

ctrl+w moves focus between the panes. New output only scrolls the history
pane while the input box has focus; with the history focused the arrow and
page keys scroll it instead.
*/
package chat
