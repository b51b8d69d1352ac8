// Package tui is the terminal front end built on bubbletea.
package tui

import (
	"context"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// EventMsg carries a timer event into the update loop.
type EventMsg timekeeper.Event

// AdvisoryMsg carries a user-facing failure message.
type AdvisoryMsg string

// SettingsMsg carries committed settings into the update loop.
type SettingsMsg model.Settings

type eventsClosedMsg struct{}

// WaitForEvent returns a command that delivers the next timer event.
func WaitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg(event)
	}
}

// WaitForSettings returns a command that delivers the next settings commit.
func WaitForSettings(changes <-chan model.Settings) tea.Cmd {
	return func() tea.Msg {
		return SettingsMsg(<-changes)
	}
}

// offerLatest replaces any pending value so the reader only sees the newest.
func offerLatest(changes chan model.Settings, current model.Settings) {
	for {
		select {
		case changes <- current:
			return
		default:
		}
		select {
		case <-changes:
		default:
		}
	}
}

// Model is the bubbletea model for the timer.
type Model struct {
	session  *session.Session
	events   <-chan timekeeper.Event
	changes  chan model.Settings
	progress progress.Model
	styles   styles
	form     *settingsForm
	message  string
	width    int
	ringing  bool
}

// New builds the model over a running session.
func New(sess *session.Session) Model {
	m := Model{
		session:  sess,
		events:   sess.Subscribe(64),
		changes:  make(chan model.Settings, 1),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.progress.Width = 40
	m.applyTheme(sess.Display().Theme)
	changes := m.changes
	sess.Settings().OnChange(func(current model.Settings) {
		offerLatest(changes, current)
	})
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(WaitForEvent(m.events), WaitForSettings(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width < 10 {
			width = 10
		}
		m.progress.Width = width
		return m, nil
	case EventMsg:
		if msg.Type == timekeeper.EventComplete {
			m.message = notify.Body(msg.From, msg.Mode)
		}
		return m, WaitForEvent(m.events)
	case eventsClosedMsg:
		return m, tea.Quit
	case SettingsMsg:
		m.applyTheme(msg.Theme)
		return m, WaitForSettings(m.changes)
	case BellMsg:
		m.ringing = true
		return m, ringBell()
	case bellDoneMsg:
		m.ringing = false
		return m, nil
	case AdvisoryMsg:
		m.message = string(msg)
		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s", " ":
		m.message = ""
		m.session.Start()
	case "p":
		m.session.Pause()
	case "r":
		m.session.Reset()
	case "1":
		m.session.SwitchMode(model.ModeFocus)
	case "2":
		m.session.SwitchMode(model.ModeShortBreak)
	case "3":
		m.session.SwitchMode(model.ModeLongBreak)
	case "t":
		next := m.session.Display().Theme.Next()
		if err := m.session.SetTheme(next); err != nil {
			m.message = "Theme applied but could not be saved."
		}
		m.applyTheme(next)
	case "e":
		form := newSettingsForm(m.session.Form())
		m.form = &form
		return m, form.focusCmd()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "enter":
		if _, err := m.session.SaveSettings(m.form.value()); err != nil {
			m.message = "Settings applied but could not be saved."
		} else {
			m.message = "Settings saved."
		}
		m.form = nil
		return m, nil
	case "ctrl+r":
		form := newSettingsForm(m.session.DefaultForm())
		form.focus = m.form.focus
		m.form = &form
		return m, form.focusCmd()
	}
	form := *m.form
	cmd := form.update(msg)
	m.form = &form
	return m, cmd
}

func (m *Model) applyTheme(th model.Theme) {
	m.styles = newStyles(th)
}

// NewProgram returns a full-screen program over sess that stops when ctx
// is cancelled.
func NewProgram(ctx context.Context, sess *session.Session) *tea.Program {
	return tea.NewProgram(New(sess), tea.WithAltScreen(), tea.WithContext(ctx))
}
