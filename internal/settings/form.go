package settings

import (
	"strconv"
	"strings"
	"unicode"

	"pomodoro/internal/core/model"
)

// Form is the editable mirror of the settings shown by a front end.
// Durations stay as raw text until Save parses them.
type Form struct {
	FocusDuration        string
	ShortBreakDuration   string
	LongBreakDuration    string
	AudioNotifications   bool
	BrowserNotifications bool
}

// FormFrom fills a form from committed settings.
func FormFrom(settings model.Settings) Form {
	return Form{
		FocusDuration:        strconv.Itoa(settings.FocusDuration),
		ShortBreakDuration:   strconv.Itoa(settings.ShortBreakDuration),
		LongBreakDuration:    strconv.Itoa(settings.LongBreakDuration),
		AudioNotifications:   settings.AudioNotifications,
		BrowserNotifications: settings.BrowserNotifications,
	}
}

// Apply merges the form onto base. A duration that does not parse to a
// positive integer of at most MaxDurationMinutes falls back to the
// built-in default for that field.
func (form Form) Apply(base model.Settings) model.Settings {
	defaults := model.DefaultSettings()
	base.FocusDuration = minutesOrDefault(form.FocusDuration, defaults.FocusDuration)
	base.ShortBreakDuration = minutesOrDefault(form.ShortBreakDuration, defaults.ShortBreakDuration)
	base.LongBreakDuration = minutesOrDefault(form.LongBreakDuration, defaults.LongBreakDuration)
	base.AudioNotifications = form.AudioNotifications
	base.BrowserNotifications = form.BrowserNotifications
	return base
}

func minutesOrDefault(raw string, fallback int) int {
	value, ok := parseLeadingInt(raw)
	if !ok || !model.ValidDuration(value) {
		return fallback
	}
	return value
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows, so "30min" yields 30.
func parseLeadingInt(raw string) (int, bool) {
	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	value, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}
