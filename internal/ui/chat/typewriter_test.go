// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{0, 50 * time.Millisecond},
		{-3, 50 * time.Millisecond},
		{1, 150 * time.Millisecond},
		{2, 140 * time.Millisecond},
		{5, 110 * time.Millisecond},
		{10, 60 * time.Millisecond},
		{25, 60 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Interval(tt.speed), "speed %d", tt.speed)
	}
	for speed := 1; speed <= 10; speed++ {
		assert.GreaterOrEqual(t, Interval(speed), RefreshInterval)
	}
}

func TestTypewriter_RevealStrictlyIncreases(t *testing.T) {
	text := "héllo, 世界!"
	runes := len([]rune(text))

	for speed := 1; speed <= 10; speed++ {
		tw := NewTypewriter()
		require.NoError(t, tw.Start(text, 3))

		last := 0
		ticks := 0
		for tw.Active() {
			step := tw.Tick(speed)
			ticks++
			require.True(t, step.Changed)
			assert.Equal(t, Handle(3), step.Slot)
			assert.Equal(t, last+1, step.Revealed, "speed %d", speed)
			assert.LessOrEqual(t, step.Revealed, runes)
			assert.Equal(t, string([]rune(text)[:step.Revealed]), step.Text)
			last = step.Revealed
			require.LessOrEqual(t, ticks, runes, "reveal overshot")
		}
		assert.Equal(t, runes, last)
		assert.Equal(t, runes, ticks)
		assert.Equal(t, TypingIdle, tw.State())
	}
}

func TestTypewriter_LastStepIsDone(t *testing.T) {
	tw := NewTypewriter()
	require.NoError(t, tw.Start("ab", 0))

	assert.False(t, tw.Tick(5).Done)
	step := tw.Tick(5)
	assert.True(t, step.Done)
	assert.Equal(t, "ab", step.Text)

	after := tw.Tick(5)
	assert.False(t, after.Changed)
	assert.Equal(t, NoHandle, after.Slot)
}

func TestTypewriter_SpeedZeroIsInstant(t *testing.T) {
	tw := NewTypewriter()
	require.NoError(t, tw.Start("instant reply", 1))

	step := tw.Tick(0)
	assert.True(t, step.Done)
	assert.Equal(t, "instant reply", step.Text)
	assert.Equal(t, len("instant reply"), tw.Revealed())
	assert.Equal(t, TypingIdle, tw.State())

	for i := 0; i < 3; i++ {
		assert.False(t, tw.Tick(0).Changed)
	}
	assert.Equal(t, len("instant reply"), tw.Revealed())
}

func TestTypewriter_StartWhileRevealing(t *testing.T) {
	tw := NewTypewriter()
	require.NoError(t, tw.Start("first", 0))
	tw.Tick(3)

	assert.ErrorIs(t, tw.Start("second", 1), ErrTypingInProgress)
	assert.Equal(t, 1, tw.Revealed())
	assert.Equal(t, "fi", tw.Tick(3).Text)
}

func TestTypewriter_StopFreezesRevealed(t *testing.T) {
	tw := NewTypewriter()
	require.NoError(t, tw.Start("frozen text", 2))
	tw.Tick(4)
	tw.Tick(4)
	tw.Tick(4)

	assert.NotPanics(t, tw.Stop)
	assert.NotPanics(t, tw.Stop)
	assert.Equal(t, TypingIdle, tw.State())
	assert.Equal(t, 3, tw.Revealed())
	assert.Equal(t, 0, tw.Len())
	assert.False(t, tw.Tick(4).Changed)

	require.NoError(t, tw.Start("next", 5))
	assert.Equal(t, 0, tw.Revealed())
	assert.Equal(t, "n", tw.Tick(4).Text)
}

func TestTypewriter_EmptyTextCompletesImmediately(t *testing.T) {
	tw := NewTypewriter()
	require.NoError(t, tw.Start("", 4))
	assert.False(t, tw.Active())
	assert.Equal(t, 0, tw.Revealed())
	assert.False(t, tw.Tick(1).Changed)
}

func TestTypewriter_NormalizesToNFC(t *testing.T) {
	tw := NewTypewriter()
	// "e" followed by a combining acute accent composes to one rune.
	require.NoError(t, tw.Start("é!", 0))
	assert.Equal(t, 2, tw.Len())

	step := tw.Tick(1)
	assert.Equal(t, "é", step.Text)
}

func TestTypingStateString(t *testing.T) {
	assert.Equal(t, "idle", TypingIdle.String())
	assert.Equal(t, "revealing", TypingRevealing.String())
}
