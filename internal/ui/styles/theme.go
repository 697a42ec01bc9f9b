// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the lipgloss styles derived from a palette.
type Theme struct {
	Name    string
	Palette Palette

	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Panes
	NormalBorder lipgloss.Style
	FocusBorder  lipgloss.Style

	// Menus
	MenuVoice    lipgloss.Style
	MenuSelected lipgloss.Style

	// Chat
	NormalContent lipgloss.Style
	Who           lipgloss.Style
	AIMessage     lipgloss.Style
	UserMessage   lipgloss.Style
	Divider       lipgloss.Style
	ChatModel     lipgloss.Style
	Status        lipgloss.Style
	Error         lipgloss.Style

	// Chrome
	Title lipgloss.Style
	Hint  lipgloss.Style
	Key   lipgloss.Style
	Box   lipgloss.Style

	Width  int
	Height int
}

// NewTheme builds a theme from a palette. Entries that fail to parse fall
// back to an unstyled style.
func NewTheme(name string, p Palette) *Theme {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	if name == "" {
		name = DefaultThemeName
	}
	t := &Theme{
		Name:         name,
		Palette:      p,
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// DefaultTheme returns the theme for the built-in palette.
func DefaultTheme() *Theme {
	return NewTheme(DefaultThemeName, DefaultPalette())
}

// LoadTheme loads a named theme from themesDir. The returned theme is
// always usable; err reports why the default palette was used instead.
func LoadTheme(themesDir, name string) (*Theme, error) {
	p, err := LoadPalette(themesDir, name)
	if err != nil {
		return NewTheme(DefaultThemeName, p), err
	}
	return NewTheme(name, p), nil
}

func (t *Theme) initStyles() {
	t.NormalBorder = t.Style(EntryNormalBorder).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.foreground(EntryNormalBorder))
	t.FocusBorder = t.Style(EntryFocusBorder).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(t.foreground(EntryFocusBorder))

	t.MenuVoice = t.Style(EntryMenuVoice).Padding(0, 1)
	t.MenuSelected = t.Style(EntryMenuSelected).Padding(0, 1)

	t.NormalContent = t.Style(EntryNormalContent)
	t.Who = t.Style(EntryWho)
	t.AIMessage = t.Style(EntryAIMessage)
	t.UserMessage = t.Style(EntryUserMessage)
	t.Divider = t.Style(EntryDivider)
	t.ChatModel = t.Style(EntryChatModel)
	t.Status = t.Style(EntryStatus)
	t.Error = t.Style(EntryError)

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(Purple).MarginBottom(1)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)
	t.Key = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
}

// Style returns the style for a palette entry name. Unknown names and
// entries with invalid specs render unstyled.
func (t *Theme) Style(name string) lipgloss.Style {
	e, ok := t.Palette.Lookup(name)
	if !ok {
		return emptyStyle()
	}
	style := emptyStyle()
	if c, set, err := ParseColor(e.Foreground); err == nil && set {
		style = style.Foreground(c)
	}
	if c, set, err := ParseColor(e.Background); err == nil && set {
		style = style.Background(c)
	}
	if withAttrs, err := applyAttributes(style, e.Attributes); err == nil {
		style = withAttrs
	}
	return style
}

func (t *Theme) foreground(name string) lipgloss.TerminalColor {
	e, ok := t.Palette.Lookup(name)
	if !ok {
		return lipgloss.NoColor{}
	}
	c, set, err := ParseColor(e.Foreground)
	if err != nil || !set {
		return lipgloss.NoColor{}
	}
	return c
}

// Border returns the pane border style for the focus state.
func (t *Theme) Border(focused bool) lipgloss.Style {
	if focused {
		return t.FocusBorder
	}
	return t.NormalBorder
}

// SetSize records the terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle()
}
