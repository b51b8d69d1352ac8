package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownMode indicates a mode key outside the supported set.
var ErrUnknownMode = errors.New("unknown mode")

// ErrUnknownTheme indicates a theme name outside the supported set.
var ErrUnknownTheme = errors.New("unknown theme")

// Mode selects which configured duration governs the countdown.
type Mode uint8

const (
	ModeFocus Mode = iota
	ModeShortBreak
	ModeLongBreak
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

var modeKeys = map[Mode]string{
	ModeFocus:      "focus",
	ModeShortBreak: "shortBreak",
	ModeLongBreak:  "longBreak",
}

var modeLabels = map[Mode]string{
	ModeFocus:      "Focus",
	ModeShortBreak: "Short Break",
	ModeLongBreak:  "Long Break",
}

// ParseMode resolves a mode key such as "shortBreak".
func ParseMode(key string) (Mode, error) {
	for mode, candidate := range modeKeys {
		if candidate == key {
			return mode, nil
		}
	}
	return ModeFocus, fmt.Errorf("parse mode %q: %w", key, ErrUnknownMode)
}

// String returns the mode key.
func (mode Mode) String() string {
	if key, ok := modeKeys[mode]; ok {
		return key
	}
	return fmt.Sprintf("mode(%d)", uint8(mode))
}

// Label returns the human readable mode name.
func (mode Mode) Label() string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return mode.String()
}

// Next returns the mode entered automatically when a countdown completes.
func (mode Mode) Next() Mode {
	if mode == ModeFocus {
		return ModeShortBreak
	}
	return ModeFocus
}

// MarshalText implements encoding.TextMarshaler.
func (mode Mode) MarshalText() ([]byte, error) {
	key, ok := modeKeys[mode]
	if !ok {
		return nil, fmt.Errorf("marshal mode %d: %w", uint8(mode), ErrUnknownMode)
	}
	return []byte(key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

// Theme identifies a colour scheme.
type Theme uint8

const (
	ThemeDefault Theme = iota
	ThemeDark
	ThemeLight
	ThemeForest
	ThemeOcean
)

// Themes lists every theme in picker order.
var Themes = []Theme{ThemeDefault, ThemeDark, ThemeLight, ThemeForest, ThemeOcean}

var themeNames = map[Theme]string{
	ThemeDefault: "default",
	ThemeDark:    "dark",
	ThemeLight:   "light",
	ThemeForest:  "forest",
	ThemeOcean:   "ocean",
}

// ParseTheme resolves a theme name such as "dark".
func ParseTheme(name string) (Theme, error) {
	for theme, candidate := range themeNames {
		if candidate == name {
			return theme, nil
		}
	}
	return ThemeDefault, fmt.Errorf("parse theme %q: %w", name, ErrUnknownTheme)
}

// String returns the theme name.
func (theme Theme) String() string {
	if name, ok := themeNames[theme]; ok {
		return name
	}
	return fmt.Sprintf("theme(%d)", uint8(theme))
}

// Next returns the following theme in picker order, wrapping around.
func (theme Theme) Next() Theme {
	for index, candidate := range Themes {
		if candidate == theme {
			return Themes[(index+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

// MarshalText implements encoding.TextMarshaler.
func (theme Theme) MarshalText() ([]byte, error) {
	name, ok := themeNames[theme]
	if !ok {
		return nil, fmt.Errorf("marshal theme %d: %w", uint8(theme), ErrUnknownTheme)
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (theme *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*theme = parsed
	return nil
}

// MaxDurationMinutes is the longest mode a user can configure: one day.
const MaxDurationMinutes = 24 * 60

// ValidDuration reports whether minutes is a usable mode length.
func ValidDuration(minutes int) bool {
	return minutes > 0 && minutes <= MaxDurationMinutes
}

// Settings is the persisted user configuration. Durations are minutes.
type Settings struct {
	FocusDuration        int   `json:"focusDuration" yaml:"focus_duration"`
	ShortBreakDuration   int   `json:"shortBreakDuration" yaml:"short_break_duration"`
	LongBreakDuration    int   `json:"longBreakDuration" yaml:"long_break_duration"`
	AudioNotifications   bool  `json:"audioNotifications" yaml:"audio_notifications"`
	BrowserNotifications bool  `json:"browserNotifications" yaml:"browser_notifications"`
	Theme                Theme `json:"theme" yaml:"theme"`
}

// DefaultSettings returns the built-in settings record.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:        25,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		AudioNotifications:   true,
		BrowserNotifications: true,
		Theme:                ThemeDefault,
	}
}

// DurationFor returns the configured minutes for a mode.
func (settings Settings) DurationFor(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakDuration
	case ModeLongBreak:
		return settings.LongBreakDuration
	default:
		return settings.FocusDuration
	}
}

// Duration returns the configured length of a mode.
func (settings Settings) Duration(mode Mode) time.Duration {
	return time.Duration(settings.DurationFor(mode)) * time.Minute
}
