// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screens implements every full-screen page other than the chat:
// the main menu, the model and theme pickers, the history browser, the
// config form, chat settings, help and about.
//
// A screen handles keys and answers with commands carrying nav messages. It
// never switches state itself; the app package owns that.
package screens
