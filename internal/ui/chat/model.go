// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/dispatch"
	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/nav"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

const (
	assistantPrefix = "AIm: "
	userPrefix      = "You: "
	errorPrefix     = "Error: "
	exitCommand     = "exit"
	goodbyeLine     = assistantPrefix + "Goodbye!"

	inputLines = 3
)

// =============================================================================
// STATUS PHASE
// =============================================================================

// StatusPhase selects the status line motif.
type StatusPhase int

const (
	StatusNone StatusPhase = iota
	StatusPending
	StatusRevealing
)

// String returns the phase name used in logs.
func (p StatusPhase) String() string {
	switch p {
	case StatusPending:
		return "pending"
	case StatusRevealing:
		return "revealing"
	default:
		return "none"
	}
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options are the collaborators of a chat screen.
type Options struct {
	Dispatcher *dispatch.Dispatcher
	Config     *config.Config
	Theme      *styles.Theme
	Log        zerolog.Logger
}

// Model is the chat screen. It is used from the Bubble Tea update loop only.
type Model struct {
	session string
	alive   bool

	transcript *storage.Transcript
	modelName  string

	cfg        *config.Config
	theme      *styles.Theme
	log        zerolog.Logger
	dispatcher *dispatch.Dispatcher

	pending *dispatch.Future
	tw      *Typewriter
	sched   *Scheduler
	phase   StatusPhase
	notice  string

	surface *Surface
	input   textarea.Model
	spinner spinner.Model
	keys    KeyMap

	width    int
	height   int
	lastTick time.Time
}

// New creates a chat screen over a transcript. A transcript with messages
// is rendered into the history pane first.
func New(t *storage.Transcript, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.DefaultTheme()
	}

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.SetHeight(inputLines)
	ta.KeyMap.InsertNewline = DefaultKeyMap().Newline
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(styles.PendingSpinner),
		spinner.WithStyle(theme.Status),
	)

	session := uuid.NewString()
	m := &Model{
		session:    session,
		alive:      true,
		transcript: t,
		modelName:  t.Conversation().Model,
		cfg:        cfg,
		theme:      theme,
		log:        opts.Log.With().Str("component", "chat").Str("session", session).Logger(),
		dispatcher: opts.Dispatcher,
		tw:         NewTypewriter(),
		sched:      NewScheduler(),
		surface:    NewSurface(theme),
		input:      ta,
		spinner:    sp,
		keys:       DefaultKeyMap(),
	}
	m.sched.Register(TaskAnimator, Interval(cfg.TypewriterSpeed), m.animate)
	m.sched.Register(TaskStatus, styles.PendingSpinner.FPS, m.spin)
	m.hydrate()
	m.log.Info().Str("id", t.ID()).Str("model", m.modelName).Int("messages", t.Len()).Msg("chat opened")
	return m
}

// hydrate renders saved messages with a divider after every exchange.
func (m *Model) hydrate() {
	for i, msg := range m.transcript.Messages() {
		h := m.surface.AppendEntry(msg.Line(), false)
		if msg.Role == model.RoleAssistant && m.cfg.RenderMarkdown {
			m.surface.SetMarkdown(h, true)
		}
		if (i+1)%2 == 0 {
			m.surface.AppendDivider()
		}
	}
}

// Init starts the tick chain and the cursor blink.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickCmd(m.session))
}

// Session returns the screen's session ID.
func (m *Model) Session() string {
	return m.session
}

// Alive reports whether the screen has not been torn down.
func (m *Model) Alive() bool {
	return m.alive
}

// Close tears the screen down. Pending results and ticks are dropped from
// then on. Closing twice is harmless.
func (m *Model) Close() {
	if !m.alive {
		return
	}
	m.alive = false
	m.tw.Stop()
	m.phase = StatusNone
	m.log.Info().Str("id", m.transcript.ID()).Bool("pending", m.pending != nil).Msg("chat closed")
}

// Transcript returns the conversation being shown.
func (m *Model) Transcript() *storage.Transcript {
	return m.transcript
}

// ModelName returns the model replies are requested from.
func (m *Model) ModelName() string {
	return m.modelName
}

// Busy reports whether a request is in flight or a reply is being revealed.
func (m *Model) Busy() bool {
	return m.pending != nil || m.tw.Active()
}

// Phase returns the status phase.
func (m *Model) Phase() StatusPhase {
	return m.phase
}

// Notice returns the inline status message, if any.
func (m *Model) Notice() string {
	return m.notice
}

// Surface returns the history pane.
func (m *Model) Surface() *Surface {
	return m.surface
}

// SetTheme restyles the screen.
func (m *Model) SetTheme(theme *styles.Theme) {
	if theme == nil {
		return
	}
	m.theme = theme
	m.surface.SetTheme(theme)
	m.spinner.Style = theme.Status
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles non-key messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		return m.HandleTick(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return nil
	}
	if m.surface.Focus() != FocusInput {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// HandleTick collects a finished request and advances the animations. The
// tick reschedules itself while the screen is alive.
func (m *Model) HandleTick(msg TickMsg) tea.Cmd {
	if !m.alive || msg.Session != m.session {
		m.log.Debug().Str("tick_session", msg.Session).Msg("dropping stale tick")
		return nil
	}

	m.lastTick = msg.Time
	m.pollPending(msg.Time)
	if m.Busy() {
		m.sched.Run(msg.Time)
	} else if m.phase != StatusNone {
		m.setPhase(StatusNone, msg.Time)
	}
	return tickCmd(m.session)
}

func (m *Model) pollPending(now time.Time) {
	if m.pending == nil {
		return
	}
	res, ok := m.pending.Poll()
	if !ok {
		return
	}
	m.pending = nil
	m.applyResult(res, now)
}

// applyResult shows a reply or an error. Results owned by another session
// are dropped.
func (m *Model) applyResult(res dispatch.Result, now time.Time) {
	if !m.alive || res.Owner != m.session {
		m.log.Debug().Str("request", res.RequestID).Str("owner", res.Owner).Msg("dropping result for stale session")
		return
	}

	if res.Err != nil {
		detail := res.Err.Error()
		var gwErr *gateway.GatewayError
		if errors.As(res.Err, &gwErr) {
			detail = gwErr.Detail
		}
		m.surface.AppendEntry(assistantPrefix+errorPrefix+detail, true)
		m.tw.Stop()
		m.setPhase(StatusNone, now)
		m.log.Warn().Str("request", res.RequestID).Str("detail", detail).Msg("reply failed")
		return
	}

	if err := m.transcript.Append(model.RoleAssistant, res.Reply); err != nil {
		m.notice = "Could not save chat: " + err.Error()
	}

	slot := m.surface.AppendEntry(assistantPrefix, false)
	if err := m.tw.Start(res.Reply, slot); err != nil {
		// Unreachable while submit refuses to run during a reveal.
		m.log.Error().Err(err).Msg("typewriter start")
		m.surface.SetEntry(slot, assistantPrefix+res.Reply)
		return
	}
	if !m.tw.Active() {
		m.finishReveal(slot, now)
		return
	}
	m.sched.SetInterval(TaskAnimator, Interval(m.cfg.TypewriterSpeed), now)
	m.setPhase(StatusRevealing, now)
	m.log.Debug().Str("request", res.RequestID).Int("runes", m.tw.Len()).Dur("took", res.Duration).Msg("revealing reply")
}

// animate is the animator task.
func (m *Model) animate(now time.Time) {
	step := m.tw.Tick(m.cfg.TypewriterSpeed)
	if !step.Changed {
		return
	}
	m.surface.SetEntry(step.Slot, assistantPrefix+step.Text)
	m.surface.ScrollToBottom()
	if step.Done {
		m.finishReveal(step.Slot, now)
	}
}

func (m *Model) finishReveal(slot Handle, now time.Time) {
	if m.cfg.RenderMarkdown {
		m.surface.SetMarkdown(slot, true)
	}
	m.setPhase(StatusNone, now)
	m.surface.ScrollToBottom()
	m.log.Debug().Int("revealed", m.tw.Revealed()).Msg("reveal complete")
}

// spin is the status task.
func (m *Model) spin(time.Time) {
	m.spinner, _ = m.spinner.Update(m.spinner.Tick())
}

// clock returns the time of the last tick, so limiter updates made between
// ticks stay on the tick timeline.
func (m *Model) clock() time.Time {
	if m.lastTick.IsZero() {
		return time.Now()
	}
	return m.lastTick
}

func (m *Model) setPhase(p StatusPhase, now time.Time) {
	if p == m.phase {
		return
	}
	m.phase = p
	var motif spinner.Spinner
	switch p {
	case StatusPending:
		motif = styles.PendingSpinner
	case StatusRevealing:
		motif = styles.RevealingSpinner
	default:
		return
	}
	// A fresh spinner starts on frame 0; motifs differ in length.
	m.spinner = spinner.New(spinner.WithSpinner(motif), spinner.WithStyle(m.theme.Status))
	m.sched.SetInterval(TaskStatus, motif.FPS, now)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// HandleKey routes a key press.
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.Close()
		return nav.Navigate(nav.MainMenu)
	case key.Matches(msg, m.keys.Settings):
		return nav.Navigate(nav.ChatSettings)
	case key.Matches(msg, m.keys.Help):
		return nav.Navigate(nav.Help)
	case key.Matches(msg, m.keys.ToggleFocus):
		return m.toggleFocus()
	}

	if m.surface.Focus() == FocusHistory {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.surface.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.surface.ScrollDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.surface.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.surface.PageDown()
		}
		return nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	f := m.surface.ToggleFocus()
	m.log.Debug().Str("focus", f.String()).Msg("focus changed")
	if f == FocusInput {
		m.surface.ScrollToBottom()
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// submit sends the input box contents. It is refused while a request is in
// flight or a reply is still being revealed.
func (m *Model) submit() tea.Cmd {
	if m.Busy() {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()
	m.surface.AppendEntry(userPrefix+text, true)

	if strings.EqualFold(text, exitCommand) {
		m.surface.AppendEntry(goodbyeLine, false)
		m.log.Info().Msg("exit requested from chat")
		return tea.Quit
	}

	m.notice = ""
	if err := m.transcript.Append(model.RoleUser, text); err != nil {
		m.notice = "Could not save chat: " + err.Error()
	}

	if m.dispatcher == nil {
		m.surface.AppendEntry(assistantPrefix+errorPrefix+"no model backend configured", true)
		return nil
	}
	m.pending = m.dispatcher.Dispatch(m.session, m.modelName, m.transcript.Messages())
	m.setPhase(StatusPending, m.clock())
	m.log.Debug().Str("request", m.pending.ID()).Str("id", m.transcript.ID()).Msg("message sent")
	return nil
}

// =============================================================================
// LAYOUT
// =============================================================================

// SetSize lays the screen out for a terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	innerWidth := max(width-2, 1)
	// header, status and hint lines plus two bordered panes
	historyHeight := height - 3 - (inputLines + 2) - 2
	m.surface.SetSize(innerWidth, max(historyHeight, 1))
	m.input.SetWidth(innerWidth)
}
