// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shellmind/internal/ui/styles"
	"github.com/jeranaias/shellmind/internal/util"
)

// MenuItem is one selectable row. Detail lines render under the label.
type MenuItem struct {
	Label  string
	Detail []string
	Value  string

	// Pinned items stay visible and keep their position under a filter.
	Pinned bool
}

// text is the string the filter matches against.
func (it MenuItem) text() string {
	if len(it.Detail) == 0 {
		return it.Label
	}
	return it.Label + " " + strings.Join(it.Detail, " ")
}

// lines is the number of rows the item occupies.
func (it MenuItem) lines() int {
	return 1 + len(it.Detail)
}

// Menu is a vertical list with a wrapping cursor and an optional
// type-to-filter query.
type Menu struct {
	Title string

	theme   *styles.Theme
	items   []MenuItem
	visible []int
	cursor  int
	offset  int

	filterable bool
	filter     string
	emptyText  string

	width  int
	height int
}

// NewMenu creates an empty menu.
func NewMenu(title string, theme *styles.Theme) *Menu {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return &Menu{
		Title:     title,
		theme:     theme,
		emptyText: "Nothing to show.",
	}
}

// EnableFilter makes printable keys edit a filter query. j and k then
// type instead of moving.
func (m *Menu) EnableFilter() {
	m.filterable = true
}

// SetEmptyText sets the caption shown when no unpinned item is listed.
func (m *Menu) SetEmptyText(s string) {
	m.emptyText = s
}

// SetTheme swaps the styles.
func (m *Menu) SetTheme(theme *styles.Theme) {
	if theme != nil {
		m.theme = theme
	}
}

// SetSize sets the area the menu may draw into.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// SetItems replaces the items. The cursor stays on the item with the same
// Value when it is still present.
func (m *Menu) SetItems(items []MenuItem) {
	current, hadCurrent := m.Selected()
	m.items = items
	m.refilter()

	m.cursor = 0
	if hadCurrent {
		for pos, idx := range m.visible {
			if m.items[idx].Value == current.Value {
				m.cursor = pos
				break
			}
		}
	}
	m.clampOffset()
}

// Items returns all items, ignoring the filter.
func (m *Menu) Items() []MenuItem {
	return m.items
}

// Visible returns the items currently listed, in display order.
func (m *Menu) Visible() []MenuItem {
	out := make([]MenuItem, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.items[idx]
	}
	return out
}

// Filter returns the current filter query.
func (m *Menu) Filter() string {
	return m.filter
}

// SetFilter replaces the filter query.
func (m *Menu) SetFilter(q string) {
	m.filter = q
	m.refilter()
	m.cursor = 0
	m.offset = 0
}

// Cursor returns the position of the highlighted item among the visible
// ones.
func (m *Menu) Cursor() int {
	return m.cursor
}

// Selected returns the highlighted item.
func (m *Menu) Selected() (MenuItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return MenuItem{}, false
	}
	return m.items[m.visible[m.cursor]], true
}

// Select moves the cursor to the first visible item with the given value.
func (m *Menu) Select(value string) bool {
	for pos, idx := range m.visible {
		if m.items[idx].Value == value {
			m.cursor = pos
			m.clampOffset()
			return true
		}
	}
	return false
}

// HandleKey moves the cursor or edits the filter. It returns the item
// and true when enter picks one.
func (m *Menu) HandleKey(msg tea.KeyMsg) (MenuItem, bool) {
	switch msg.String() {
	case "enter":
		return m.Selected()
	case "up", "shift+tab":
		m.move(-1)
	case "down", "tab":
		m.move(1)
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.visible) - 1
	case "pgup":
		m.move(-m.pageSize())
	case "pgdown":
		m.move(m.pageSize())
	case "backspace":
		if m.filterable && m.filter != "" {
			r := []rune(m.filter)
			m.SetFilter(string(r[:len(r)-1]))
		}
	case "k":
		if !m.filterable {
			m.move(-1)
			break
		}
		m.SetFilter(m.filter + "k")
	case "j":
		if !m.filterable {
			m.move(1)
			break
		}
		m.SetFilter(m.filter + "j")
	default:
		if m.filterable && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
			m.SetFilter(m.filter + string(msg.Runes))
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
	return MenuItem{}, false
}

// move shifts the cursor by delta. Single steps wrap around; page jumps
// stop at the ends.
func (m *Menu) move(delta int) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	next := m.cursor + delta
	switch {
	case delta == 1 || delta == -1:
		next = (next + n) % n
	case next < 0:
		next = 0
	case next >= n:
		next = n - 1
	}
	m.cursor = next
}

func (m *Menu) pageSize() int {
	if m.height <= 1 {
		return 1
	}
	return m.height / 2
}

func (m *Menu) refilter() {
	if m.filter == "" {
		m.visible = make([]int, len(m.items))
		for i := range m.items {
			m.visible[i] = i
		}
		return
	}

	var texts []string
	var index []int
	for i, it := range m.items {
		if it.Pinned {
			continue
		}
		texts = append(texts, it.text())
		index = append(index, i)
	}
	m.visible = m.visible[:0]
	for _, r := range Rank(m.filter, texts) {
		m.visible = append(m.visible, index[r])
	}
	for i, it := range m.items {
		if it.Pinned {
			m.visible = append(m.visible, i)
		}
	}
}

// listHeight is the number of rows available to items.
func (m *Menu) listHeight() int {
	h := m.height
	if m.Title != "" {
		h -= 2
	}
	if m.filterable {
		h--
	}
	return h
}

// clampOffset scrolls so the cursor item is fully on screen.
func (m *Menu) clampOffset() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
	avail := m.listHeight()
	if avail <= 0 || len(m.visible) == 0 {
		return
	}
	for m.offset < m.cursor && m.rows(m.offset, m.cursor) > avail {
		m.offset++
	}
}

// rows counts the lines used by visible items from..to inclusive.
func (m *Menu) rows(from, to int) int {
	n := 0
	for i := from; i <= to && i < len(m.visible); i++ {
		n += m.items[m.visible[i]].lines()
	}
	return n
}

// View renders the menu.
func (m *Menu) View() string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, m.theme.Title.Render(m.Title))
	}
	if m.filterable {
		if m.filter == "" {
			parts = append(parts, m.theme.Hint.Render("Type to filter"))
		} else {
			parts = append(parts, m.theme.Hint.Render("Filter: ")+m.theme.Key.Render(m.filter))
		}
	}

	if m.unpinnedVisible() == 0 {
		parts = append(parts, m.theme.Hint.Render(m.emptyCaption()))
	}

	avail := m.listHeight()
	used := 0
	for pos := m.offset; pos < len(m.visible); pos++ {
		it := m.items[m.visible[pos]]
		if m.height > 0 && used+it.lines() > avail && used > 0 {
			more := len(m.visible) - pos
			parts = append(parts, m.theme.Hint.Render("  ... "+strconv.Itoa(more)+" more"))
			break
		}
		parts = append(parts, m.renderItem(it, pos == m.cursor))
		used += it.lines()
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Menu) emptyCaption() string {
	if m.filter != "" {
		return "No matches."
	}
	return m.emptyText
}

func (m *Menu) unpinnedVisible() int {
	n := 0
	for _, idx := range m.visible {
		if !m.items[idx].Pinned {
			n++
		}
	}
	return n
}

// renderItem draws one item. The selected item gets the "> " indicator
// and the highlight style across the full width.
func (m *Menu) renderItem(it MenuItem, selected bool) string {
	indicator := "  "
	style := m.theme.MenuVoice
	if selected {
		indicator = "> "
		style = m.theme.MenuSelected
	}

	width := m.width - style.GetHorizontalFrameSize()
	lines := make([]string, 0, it.lines())
	lines = append(lines, indicator+it.Label)
	for _, d := range it.Detail {
		lines = append(lines, "    "+d)
	}
	for i, l := range lines {
		if width > 0 {
			l = util.PadWidth(l, width)
		}
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}
