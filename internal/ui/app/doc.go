// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model. It routes keys to the alert, the
// open chat or the current screen, performs navigation, owns the lifetime
// of the single chat screen and makes a saved configuration live.
package app
