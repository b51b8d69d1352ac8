// Package timerwindow is the main desktop window: the clock inside a
// progress ring, controls, a mode switcher and a theme picker.
package timerwindow

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/session"
	"pomodoro/internal/ui/themes"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Actions forwards user intents.
type Actions struct {
	Start        func()
	Pause        func()
	Reset        func()
	SwitchMode   func(model.Mode)
	SetTheme     func(model.Theme)
	OpenSettings func()
}

// Window manages the timer UI.
type Window struct {
	app          fyne.App
	window       fyne.Window
	actions      Actions
	digits       *canvas.Text
	modeLabel    *canvas.Text
	advisory     *widget.Label
	ring         *ringView
	startButton  *widget.Button
	pauseButton  *widget.Button
	resetButton  *widget.Button
	modeButtons  map[model.Mode]*widget.Button
	themeSelect  *widget.Select
	settingsItem *widget.Button
	theme        model.Theme
	themed       bool
	rendering    bool
}

// New creates the timer window. Call Render before showing it.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow(session.AppTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timer := &Window{
		app:         app,
		window:      window,
		actions:     actions,
		modeButtons: make(map[model.Mode]*widget.Button, len(model.Modes)),
	}

	timer.digits = canvas.NewText("25:00", themes.MustParseHex(themes.PaletteFor(model.ThemeDefault).Accent))
	timer.digits.Alignment = fyne.TextAlignCenter
	timer.digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timer.digits.TextSize = 64

	timer.modeLabel = canvas.NewText(model.ModeFocus.Label(), themes.MustParseHex(themes.PaletteFor(model.ThemeDefault).Muted))
	timer.modeLabel.Alignment = fyne.TextAlignCenter
	timer.modeLabel.TextSize = 18

	timer.ring = newRingView()

	timer.startButton = widget.NewButton("Start", call(actions.Start))
	timer.pauseButton = widget.NewButton("Pause", call(actions.Pause))
	timer.resetButton = widget.NewButton("Reset", call(actions.Reset))

	modeRow := container.NewGridWithColumns(len(model.Modes))
	for _, mode := range model.Modes {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			if timer.actions.SwitchMode != nil {
				timer.actions.SwitchMode(mode)
			}
		})
		timer.modeButtons[mode] = button
		modeRow.Add(button)
	}

	themeNames := make([]string, 0, len(model.Themes))
	for _, th := range model.Themes {
		themeNames = append(themeNames, th.String())
	}
	timer.themeSelect = widget.NewSelect(themeNames, timer.handleThemeSelected)
	timer.settingsItem = widget.NewButton("Settings", call(actions.OpenSettings))

	timer.advisory = widget.NewLabel("")
	timer.advisory.Wrapping = fyne.TextWrapWord
	timer.advisory.Hide()

	controls := container.NewHBox(layout.NewSpacer(), timer.startButton, timer.pauseButton, timer.resetButton, layout.NewSpacer())
	footer := container.NewBorder(nil, nil, widget.NewLabel("Theme"), timer.settingsItem, timer.themeSelect)
	content := container.NewVBox(
		modeRow,
		timer.modeLabel,
		container.NewStack(timer.ring.content, container.NewCenter(timer.digits)),
		controls,
		timer.advisory,
	)
	// The digits need a theme with a bold monospace font before layout.
	app.Settings().SetTheme(themes.New(model.ThemeDefault))
	window.SetContent(container.NewBorder(nil, footer, nil, nil, container.NewPadded(content)))
	window.Resize(fyne.NewSize(420, 480))

	return timer
}

// Window exposes the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// Update renders display from any goroutine.
func (timer *Window) Update(display session.Display) {
	fyne.Do(func() {
		timer.Render(display)
	})
}

// Advise shows a dismissable message below the controls from any goroutine.
func (timer *Window) Advise(message string) {
	fyne.Do(func() {
		timer.advisory.SetText(message)
		timer.advisory.Show()
	})
}

// Render draws display. It must run on the fyne main goroutine.
func (timer *Window) Render(display session.Display) {
	timer.rendering = true
	defer func() { timer.rendering = false }()

	timer.window.SetTitle(display.Title)
	timer.digits.Text = display.Minutes + ":" + display.Seconds
	timer.modeLabel.Text = display.Mode.Label()

	if display.Running {
		timer.startButton.Disable()
		timer.pauseButton.Enable()
		timer.advisory.Hide()
	} else {
		timer.startButton.Enable()
		timer.pauseButton.Disable()
	}
	for mode, button := range timer.modeButtons {
		if mode == display.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}

	timer.applyTheme(display.Theme, display.Mode)
	palette := themes.PaletteFor(display.Theme)
	timer.ring.set(display.Progress, themes.MustParseHex(palette.ModeColor(display.Mode)), themes.MustParseHex(palette.Surface))
	timer.digits.Refresh()
	timer.modeLabel.Refresh()
}

func (timer *Window) applyTheme(th model.Theme, mode model.Mode) {
	palette := themes.PaletteFor(th)
	timer.digits.Color = themes.MustParseHex(palette.ModeColor(mode))
	timer.modeLabel.Color = themes.MustParseHex(palette.Muted)
	if timer.themed && timer.theme == th {
		return
	}
	timer.theme = th
	timer.themed = true
	timer.themeSelect.SetSelected(th.String())
	timer.app.Settings().SetTheme(themes.New(th))
}

func (timer *Window) handleThemeSelected(name string) {
	if timer.rendering || timer.actions.SetTheme == nil {
		return
	}
	th, err := model.ParseTheme(name)
	if err != nil {
		return
	}
	timer.actions.SetTheme(th)
}

func call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
