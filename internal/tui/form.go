package tui

import (
	"strings"

	"pomodoro/internal/settings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldFocus = iota
	fieldShortBreak
	fieldLongBreak
	fieldAudio
	fieldBrowser
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Focus (min)",
	"Short break (min)",
	"Long break (min)",
	"Sound",
	"Notification",
}

// settingsForm edits a settings.Form. Durations stay raw text.
type settingsForm struct {
	inputs  [3]textinput.Model
	audio   bool
	browser bool
	focus   int
}

func newSettingsForm(form settings.Form) settingsForm {
	values := [3]string{form.FocusDuration, form.ShortBreakDuration, form.LongBreakDuration}
	var f settingsForm
	for i := range f.inputs {
		input := textinput.New()
		input.CharLimit = 6
		input.Width = 8
		input.SetValue(values[i])
		f.inputs[i] = input
	}
	f.audio = form.AudioNotifications
	f.browser = form.BrowserNotifications
	return f
}

func (f settingsForm) value() settings.Form {
	return settings.Form{
		FocusDuration:        f.inputs[fieldFocus].Value(),
		ShortBreakDuration:   f.inputs[fieldShortBreak].Value(),
		LongBreakDuration:    f.inputs[fieldLongBreak].Value(),
		AudioNotifications:   f.audio,
		BrowserNotifications: f.browser,
	}
}

// focusCmd focuses the current field and blurs the rest.
func (f *settingsForm) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (f *settingsForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
		return f.focusCmd()
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return f.focusCmd()
	case " ":
		switch f.focus {
		case fieldAudio:
			f.audio = !f.audio
			return nil
		case fieldBrowser:
			f.browser = !f.browser
			return nil
		}
	}
	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd
	}
	return nil
}

func (f settingsForm) view(st styles) string {
	var b strings.Builder
	b.WriteString(st.header.Render("Settings"))
	b.WriteString("\n\n")
	for i := 0; i < fieldCount; i++ {
		label := st.label.Render(fieldLabels[i])
		if i == f.focus {
			label = st.active.Render(fieldLabels[i])
		}
		var value string
		switch i {
		case fieldAudio:
			value = checkbox(f.audio)
		case fieldBrowser:
			value = checkbox(f.browser)
		default:
			value = f.inputs[i].View()
		}
		b.WriteString(label + "  " + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(st.dim.Render("[tab] next | [space] toggle | [ctrl+r] defaults | [enter] save | [esc] cancel"))
	return b.String()
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
