// Package themes maps the selectable color themes onto fyne and terminal
// palettes.
package themes

import (
	"fmt"
	"image/color"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette is the set of colors a theme is drawn with, as #rrggbb strings.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Break      string
	Dark       bool
}

var palettes = map[model.Theme]Palette{
	model.ThemeDefault: {Background: "#fdf6f0", Surface: "#ffffff", Text: "#2d2a32", Muted: "#8a8590", Accent: "#e5483e", Break: "#3c9d6b"},
	model.ThemeDark:    {Background: "#1e1f26", Surface: "#2a2c36", Text: "#eceff4", Muted: "#7d8292", Accent: "#ff6b5e", Break: "#5fd39a", Dark: true},
	model.ThemeLight:   {Background: "#ffffff", Surface: "#f2f2f5", Text: "#1b1b1f", Muted: "#9a9aa3", Accent: "#d9363e", Break: "#2f8f5b"},
	model.ThemeForest:  {Background: "#eaf3e6", Surface: "#f7fbf4", Text: "#1f3320", Muted: "#6f8a6c", Accent: "#3f7d3a", Break: "#c0733a"},
	model.ThemeOcean:   {Background: "#e6f1f8", Surface: "#f5fafd", Text: "#12304a", Muted: "#6a8aa3", Accent: "#1d6fa5", Break: "#2aa198"},
}

// PaletteFor returns the palette of t, falling back to the default theme.
func PaletteFor(t model.Theme) Palette {
	if palette, ok := palettes[t]; ok {
		return palette
	}
	return palettes[model.ThemeDefault]
}

// ModeColor returns the accent used while mode is active.
func (palette Palette) ModeColor(mode model.Mode) string {
	if mode == model.ModeFocus {
		return palette.Accent
	}
	return palette.Break
}

// Theme is a fyne theme drawing the default widgets with a Palette.
type Theme struct {
	palette Palette
}

// New returns the fyne theme for t.
func New(t model.Theme) *Theme {
	return &Theme{palette: PaletteFor(t)}
}

func (th *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := theme.VariantLight
	if th.palette.Dark {
		variant = theme.VariantDark
	}
	switch name {
	case theme.ColorNameBackground:
		return MustParseHex(th.palette.Background)
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return MustParseHex(th.palette.Surface)
	case theme.ColorNameForeground:
		return MustParseHex(th.palette.Text)
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return MustParseHex(th.palette.Muted)
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection:
		return MustParseHex(th.palette.Accent)
	case theme.ColorNameForegroundOnPrimary:
		return color.White
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (th *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (th *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (th *Theme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// ParseHex parses a #rrggbb color.
func ParseHex(value string) (color.NRGBA, error) {
	var red, green, blue uint8
	if _, err := fmt.Sscanf(value, "#%02x%02x%02x", &red, &green, &blue); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", value, err)
	}
	return color.NRGBA{R: red, G: green, B: blue, A: 0xff}, nil
}

// MustParseHex parses a #rrggbb color or panics.
func MustParseHex(value string) color.NRGBA {
	parsed, err := ParseHex(value)
	if err != nil {
		panic(err)
	}
	return parsed
}
