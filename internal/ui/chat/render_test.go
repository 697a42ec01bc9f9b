// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSizedSurface(width, height int) *Surface {
	s := NewSurface(nil)
	s.SetSize(width, height)
	return s
}

func TestSurface_AppendEntryWithDivider(t *testing.T) {
	s := newSizedSurface(40, 10)

	h1 := s.AppendEntry("You: hello", true)
	h2 := s.AppendEntry("AIm: ", false)

	assert.Equal(t, Handle(1), h1)
	assert.Equal(t, Handle(2), h2)
	assert.Equal(t, []string{"-", "You: hello", "AIm: "}, s.Lines())
}

func TestSurface_SetEntryInPlace(t *testing.T) {
	s := newSizedSurface(40, 10)
	h := s.AppendEntry("AIm: ", false)
	s.AppendEntry("after", false)

	s.SetEntry(h, "AIm: hi")
	text, ok := s.Entry(h)
	require.True(t, ok)
	assert.Equal(t, "AIm: hi", text)
	assert.Equal(t, []string{"AIm: hi", "after"}, s.Lines())
	assert.Contains(t, s.View(), "hi")

	// Invalid handles and dividers are ignored.
	s.SetEntry(NoHandle, "x")
	s.SetEntry(Handle(99), "x")
	s.AppendDivider()
	s.SetEntry(Handle(2), "x")
	assert.Equal(t, []string{"AIm: hi", "after", "-"}, s.Lines())
}

func fill(s *Surface, n int) {
	for i := 0; i < n; i++ {
		s.AppendEntry(fmt.Sprintf("line %d", i), false)
	}
}

func TestSurface_ScrollFollowsInputFocus(t *testing.T) {
	s := newSizedSurface(40, 5)
	fill(s, 30)
	assert.True(t, s.AtBottom())
}

func TestSurface_NoAutoScrollWithHistoryFocus(t *testing.T) {
	s := newSizedSurface(40, 5)
	fill(s, 30)

	s.SetFocus(FocusHistory)
	s.ScrollUp(10)
	offset := s.YOffset()

	s.AppendEntry("new output", false)
	s.ScrollToBottom()
	assert.Equal(t, offset, s.YOffset())
	assert.False(t, s.AtBottom())

	assert.Equal(t, FocusInput, s.ToggleFocus())
	s.ScrollToBottom()
	assert.True(t, s.AtBottom())
}

func TestSurface_PageKeys(t *testing.T) {
	s := newSizedSurface(40, 5)
	fill(s, 30)
	s.SetFocus(FocusHistory)

	bottom := s.YOffset()
	s.PageUp()
	assert.Less(t, s.YOffset(), bottom)
	s.PageDown()
	assert.Equal(t, bottom, s.YOffset())
	s.ScrollUp(2)
	s.ScrollDown(1)
	assert.Equal(t, bottom-1, s.YOffset())
}

func TestSurface_WrapsToWidth(t *testing.T) {
	s := newSizedSurface(10, 20)
	s.AppendEntry("AIm: "+strings.Repeat("x", 25), false)

	lines := strings.Split(s.View(), "\n")
	wrapped := 0
	for _, l := range lines {
		if strings.Contains(l, "x") {
			wrapped++
		}
	}
	assert.GreaterOrEqual(t, wrapped, 3)
}

func TestSplitSpeaker(t *testing.T) {
	speaker, body, ok := splitSpeaker("You: hi")
	assert.True(t, ok)
	assert.Equal(t, "You", speaker)
	assert.Equal(t, "hi", body)

	speaker, body, ok = splitSpeaker("AIm: Error: boom")
	assert.True(t, ok)
	assert.Equal(t, "AIm", speaker)
	assert.Equal(t, "Error: boom", body)

	_, body, ok = splitSpeaker("plain")
	assert.False(t, ok)
	assert.Equal(t, "plain", body)
}

func TestFocusString(t *testing.T) {
	assert.Equal(t, "input", FocusInput.String())
	assert.Equal(t, "history", FocusHistory.String())
}
