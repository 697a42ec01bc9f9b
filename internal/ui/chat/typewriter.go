// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// TYPEWRITER ANIMATOR
// =============================================================================

// RefreshInterval is the UI tick period and the fastest reveal interval.
const RefreshInterval = 50 * time.Millisecond

const (
	slowestInterval = 150 * time.Millisecond
	speedStep       = 10 * time.Millisecond
	maxSpeed        = 10
)

// ErrTypingInProgress is returned by Start while a reveal is running.
var ErrTypingInProgress = errors.New("typing already in progress")

// TypingState is the animator state.
type TypingState int

const (
	TypingIdle TypingState = iota
	TypingRevealing
)

// String returns the state name used in logs.
func (s TypingState) String() string {
	if s == TypingRevealing {
		return "revealing"
	}
	return "idle"
}

// Step describes what a tick changed.
type Step struct {
	// Slot is the render entry being revealed into.
	Slot Handle
	// Text is the revealed prefix of the target.
	Text string
	// Revealed is the number of runes in Text.
	Revealed int
	// Changed is false when the tick did nothing.
	Changed bool
	// Done is true on the tick that finished the reveal.
	Done bool
}

// Typewriter reveals a reply one rune per tick. It only tracks state; the
// caller renders each Step and decides when to tick.
type Typewriter struct {
	state    TypingState
	target   []rune
	revealed int
	slot     Handle
}

// NewTypewriter creates an idle animator.
func NewTypewriter() *Typewriter {
	return &Typewriter{slot: NoHandle}
}

// Interval returns the delay between reveal steps for a speed. Speed 0 is
// instant and uses the refresh period; speeds above 10 are treated as 10.
func Interval(speed int) time.Duration {
	if speed <= 0 {
		return RefreshInterval
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	d := slowestInterval - time.Duration(speed-1)*speedStep
	if d < RefreshInterval {
		return RefreshInterval
	}
	return d
}

// Start begins revealing text into slot. The text is NFC-normalized and
// counted in runes. Empty text completes at once and leaves the animator
// idle.
func (t *Typewriter) Start(text string, slot Handle) error {
	if t.state != TypingIdle {
		return ErrTypingInProgress
	}
	t.revealed = 0
	t.target = []rune(norm.NFC.String(text))
	if len(t.target) == 0 {
		t.target = nil
		t.slot = NoHandle
		return nil
	}
	t.slot = slot
	t.state = TypingRevealing
	return nil
}

// Tick advances the reveal. Speed 0 reveals the remainder at once.
func (t *Typewriter) Tick(speed int) Step {
	if t.state != TypingRevealing {
		return Step{Slot: NoHandle}
	}
	if speed <= 0 {
		t.revealed = len(t.target)
	} else {
		t.revealed++
	}
	step := Step{
		Slot:     t.slot,
		Text:     string(t.target[:t.revealed]),
		Revealed: t.revealed,
		Changed:  true,
	}
	if t.revealed >= len(t.target) {
		step.Done = true
		t.finish()
	}
	return step
}

// Stop abandons the reveal. Revealed keeps its value until the next Start.
func (t *Typewriter) Stop() {
	t.finish()
}

func (t *Typewriter) finish() {
	t.state = TypingIdle
	t.target = nil
	t.slot = NoHandle
}

// State returns the animator state.
func (t *Typewriter) State() TypingState {
	return t.state
}

// Active reports whether a reveal is running.
func (t *Typewriter) Active() bool {
	return t.state == TypingRevealing
}

// Revealed returns the number of runes revealed so far.
func (t *Typewriter) Revealed() int {
	return t.revealed
}

// Len returns the rune length of the current target.
func (t *Typewriter) Len() int {
	return len(t.target)
}
