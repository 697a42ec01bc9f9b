// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER MOTIFS
// =============================================================================

// PendingSpinner is shown while waiting for the model to reply.
var PendingSpinner = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// RevealingSpinner is shown while a reply is being typed out.
var RevealingSpinner = spinner.Spinner{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    time.Second / 6,
}

// Status line labels.
const (
	StatusPending   = "Waiting for model"
	StatusRevealing = "Typing"
)
