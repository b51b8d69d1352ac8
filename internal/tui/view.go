package tui

import (
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/themes"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	palette themes.Palette
	base    lipgloss.Style
	header  lipgloss.Style
	clock   lipgloss.Style
	tab     lipgloss.Style
	active  lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	message lipgloss.Style
	border  lipgloss.Style
}

func newStyles(th model.Theme) styles {
	palette := themes.PaletteFor(th)
	accent := lipgloss.Color(palette.Accent)
	muted := lipgloss.Color(palette.Muted)
	return styles{
		palette: palette,
		base:    lipgloss.NewStyle().Margin(1, 2),
		header:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		clock:   lipgloss.NewStyle().Bold(true).Padding(1, 0),
		tab:     lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		active:  lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Text)).Width(20),
		dim:     lipgloss.NewStyle().Foreground(muted),
		message: lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Break)).Bold(true),
		border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2),
	}
}

func (m Model) View() string {
	if m.ringing {
		return "\a" + m.frame()
	}
	return m.frame()
}

func (m Model) frame() string {
	if m.form != nil {
		return m.styles.base.Render(m.styles.border.Render(m.form.view(m.styles)))
	}

	display := m.session.Display()
	st := m.styles

	tabs := make([]string, 0, len(model.Modes))
	for _, mode := range model.Modes {
		if mode == display.Mode {
			tabs = append(tabs, st.active.Render(mode.Label()))
			continue
		}
		tabs = append(tabs, st.tab.Render(mode.Label()))
	}

	clock := st.clock.Foreground(lipgloss.Color(st.palette.ModeColor(display.Mode))).
		Render(display.Minutes + ":" + display.Seconds)

	state := "paused"
	if display.Running {
		state = "running"
	}

	var b strings.Builder
	b.WriteString(st.header.Render(display.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(clock)
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(display.Progress))
	b.WriteString("\n")
	b.WriteString(st.dim.Render(state + " | theme: " + display.Theme.String()))
	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(st.message.Render(m.message))
	}
	b.WriteString("\n\n")
	b.WriteString(st.dim.Render("[s]tart [p]ause [r]eset [1-3] mode [t]heme [e] settings [q]uit"))

	return st.base.Render(st.border.Render(b.String()))
}
