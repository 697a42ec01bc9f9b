// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/ui/styles"
	"github.com/jeranaias/shellmind/internal/util"
)

// =============================================================================
// RENDER SURFACE
// =============================================================================

// Handle identifies an entry for in-place updates.
type Handle int

// NoHandle is the zero reference.
const NoHandle Handle = -1

// Focus is the pane holding keyboard focus.
type Focus int

const (
	FocusInput Focus = iota
	FocusHistory
)

// String returns the pane name used in logs.
func (f Focus) String() string {
	if f == FocusHistory {
		return "history"
	}
	return "input"
}

type entry struct {
	text     string
	divider  bool
	markdown bool
}

// Surface is the append-only message log shown in the history pane.
type Surface struct {
	entries  []entry
	viewport viewport.Model
	focus    Focus
	theme    *styles.Theme
	width    int

	md      *glamour.TermRenderer
	mdWidth int
	mdCache map[Handle]string
}

// NewSurface creates an empty surface with input focus.
func NewSurface(theme *styles.Theme) *Surface {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{}
	return &Surface{
		viewport: vp,
		theme:    theme,
		mdCache:  make(map[Handle]string),
	}
}

// AppendEntry adds a text entry, preceded by a divider when withDivider is
// set, and returns the handle of the text entry.
func (s *Surface) AppendEntry(content string, withDivider bool) Handle {
	if withDivider {
		s.entries = append(s.entries, entry{divider: true})
	}
	s.entries = append(s.entries, entry{text: content})
	s.refresh()
	s.ScrollToBottom()
	return Handle(len(s.entries) - 1)
}

// AppendDivider adds a divider on its own.
func (s *Surface) AppendDivider() {
	s.entries = append(s.entries, entry{divider: true})
	s.refresh()
	s.ScrollToBottom()
}

// SetEntry replaces the text of an entry. Invalid handles are ignored.
func (s *Surface) SetEntry(h Handle, content string) {
	if !s.valid(h) {
		return
	}
	s.entries[h].text = content
	delete(s.mdCache, h)
	s.refresh()
}

// SetMarkdown marks an entry for markdown rendering of its message body.
func (s *Surface) SetMarkdown(h Handle, on bool) {
	if !s.valid(h) {
		return
	}
	s.entries[h].markdown = on
	delete(s.mdCache, h)
	s.refresh()
}

// Entry returns the raw text of an entry.
func (s *Surface) Entry(h Handle) (string, bool) {
	if !s.valid(h) {
		return "", false
	}
	return s.entries[h].text, true
}

// Len returns the number of entries, dividers included.
func (s *Surface) Len() int {
	return len(s.entries)
}

// Lines returns the raw entry texts, with "-" for dividers.
func (s *Surface) Lines() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.divider {
			out = append(out, "-")
			continue
		}
		out = append(out, e.text)
	}
	return out
}

func (s *Surface) valid(h Handle) bool {
	return h >= 0 && int(h) < len(s.entries) && !s.entries[h].divider
}

// =============================================================================
// FOCUS & SCROLLING
// =============================================================================

// Focus returns the focused pane.
func (s *Surface) Focus() Focus {
	return s.focus
}

// SetFocus moves focus to a pane.
func (s *Surface) SetFocus(f Focus) {
	s.focus = f
}

// ToggleFocus switches between the input and history panes.
func (s *Surface) ToggleFocus() Focus {
	if s.focus == FocusInput {
		s.focus = FocusHistory
	} else {
		s.focus = FocusInput
	}
	return s.focus
}

// ScrollToBottom follows new output, unless the user is reading the
// history pane.
func (s *Surface) ScrollToBottom() {
	if s.focus != FocusInput {
		return
	}
	s.viewport.GotoBottom()
}

// AtBottom reports whether the last line is visible.
func (s *Surface) AtBottom() bool {
	return s.viewport.AtBottom()
}

// YOffset returns the current scroll position.
func (s *Surface) YOffset() int {
	return s.viewport.YOffset
}

// ScrollUp moves the view up by n lines.
func (s *Surface) ScrollUp(n int) {
	s.viewport.LineUp(n)
}

// ScrollDown moves the view down by n lines.
func (s *Surface) ScrollDown(n int) {
	s.viewport.LineDown(n)
}

// PageUp moves the view up one page.
func (s *Surface) PageUp() {
	s.viewport.ViewUp()
}

// PageDown moves the view down one page.
func (s *Surface) PageDown() {
	s.viewport.ViewDown()
}

// =============================================================================
// LAYOUT & RENDERING
// =============================================================================

// SetSize sets the inner size of the history pane.
func (s *Surface) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	atBottom := s.viewport.AtBottom()
	s.viewport.Width = width
	s.viewport.Height = height
	if width != s.width {
		s.width = width
		s.mdCache = make(map[Handle]string)
	}
	s.refresh()
	if atBottom {
		s.ScrollToBottom()
	}
}

// SetTheme restyles the surface.
func (s *Surface) SetTheme(theme *styles.Theme) {
	if theme == nil {
		return
	}
	s.theme = theme
	s.md = nil
	s.mdCache = make(map[Handle]string)
	s.refresh()
}

// View renders the visible part of the log.
func (s *Surface) View() string {
	return s.viewport.View()
}

func (s *Surface) refresh() {
	s.viewport.SetContent(s.render())
}

func (s *Surface) render() string {
	width := s.width
	lines := make([]string, 0, len(s.entries))
	for i, e := range s.entries {
		if e.divider {
			lines = append(lines, s.theme.Divider.Render(strings.Repeat("-", max(width, 1))))
			continue
		}
		lines = append(lines, s.renderEntry(Handle(i), e, width))
	}
	return strings.Join(lines, "\n")
}

// renderEntry styles the speaker prefix with the "who" style and the body
// with the speaker's message style.
func (s *Surface) renderEntry(h Handle, e entry, width int) string {
	speaker, body, ok := splitSpeaker(e.text)
	if !ok {
		return s.theme.NormalContent.Render(util.WrapWidth(e.text, width))
	}

	prefix := speaker + ": "
	bodyStyle := s.theme.AIMessage
	switch {
	case speaker == model.RoleUser.Speaker():
		bodyStyle = s.theme.UserMessage
	case strings.HasPrefix(body, errorPrefix):
		bodyStyle = s.theme.Error
	}

	if e.markdown {
		if rendered, ok := s.markdown(h, body, width); ok {
			return s.theme.Who.Render(prefix) + "\n" + rendered
		}
	}

	wrapped := util.WrapWidth(prefix+body, width)
	if !strings.HasPrefix(wrapped, prefix) {
		return styleLines(bodyStyle, wrapped)
	}
	return s.theme.Who.Render(prefix) + styleLines(bodyStyle, wrapped[len(prefix):])
}

// styleLines applies a style line by line so wrapped text keeps its colors.
func styleLines(style lipgloss.Style, text string) string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		if p != "" {
			parts[i] = style.Render(p)
		}
	}
	return strings.Join(parts, "\n")
}

func splitSpeaker(text string) (speaker, body string, ok bool) {
	for _, role := range []model.Role{model.RoleUser, model.RoleAssistant} {
		prefix := role.Speaker() + ": "
		if strings.HasPrefix(text, prefix) {
			return role.Speaker(), text[len(prefix):], true
		}
	}
	return "", text, false
}

func (s *Surface) markdown(h Handle, body string, width int) (string, bool) {
	if cached, ok := s.mdCache[h]; ok {
		return cached, true
	}
	if s.md == nil || s.mdWidth != width {
		style := glamourstyles.DarkStyle
		if !s.theme.IsDark {
			style = glamourstyles.LightStyle
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(max(width, 20)),
		)
		if err != nil {
			return "", false
		}
		s.md = r
		s.mdWidth = width
	}
	out, err := s.md.Render(body)
	if err != nil {
		return "", false
	}
	out = strings.Trim(out, "\n")
	s.mdCache[h] = out
	return out, true
}
