package preferences

import (
	"pomodoro/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings editor. Durations are passed through as
// typed so the store can apply its fallback rules.
type Window struct {
	window       fyne.Window
	onSave       func(settings.Form)
	defaults     func() settings.Form
	onCancel     func()
	focus        *widget.Entry
	shortBreak   *widget.Entry
	longBreak    *widget.Entry
	audio        *widget.Check
	browser      *widget.Check
	saveButton   *widget.Button
	resetButton  *widget.Button
	cancelButton *widget.Button
}

// New creates a preferences window. defaults supplies the form shown by
// "Reset to default"; nothing is committed until Save.
func New(app fyne.App, form settings.Form, defaults func() settings.Form, onSave func(settings.Form)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	focus := widget.NewEntry()
	shortBreak := widget.NewEntry()
	longBreak := widget.NewEntry()
	audio := widget.NewCheck("Sound when a timer ends", nil)
	browser := widget.NewCheck("Desktop notification when a timer ends", nil)

	fields := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Focus"), widget.NewLabel("min"), focus),
		container.NewBorder(nil, nil, widget.NewLabel("Short break"), widget.NewLabel("min"), shortBreak),
		container.NewBorder(nil, nil, widget.NewLabel("Long break"), widget.NewLabel("min"), longBreak),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		audio,
		browser,
	)

	saveButton := widget.NewButton("Save", nil)
	saveButton.Importance = widget.HighImportance
	resetButton := widget.NewButton("Reset to default", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, resetButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, fields))
	window.Resize(fyne.NewSize(380, 320))

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		defaults:     defaults,
		focus:        focus,
		shortBreak:   shortBreak,
		longBreak:    longBreak,
		audio:        audio,
		browser:      browser,
		saveButton:   saveButton,
		resetButton:  resetButton,
		cancelButton: cancelButton,
	}
	prefs.SetForm(form)

	saveButton.OnTapped = prefs.handleSave
	resetButton.OnTapped = prefs.handleReset
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(cancelButton.OnTapped)

	return prefs
}

// Show displays the window with the given form.
func (prefs *Window) Show(form settings.Form) {
	prefs.SetForm(form)
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run when the window is dismissed unsaved.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// SetForm replaces window values.
func (prefs *Window) SetForm(form settings.Form) {
	prefs.focus.SetText(form.FocusDuration)
	prefs.shortBreak.SetText(form.ShortBreakDuration)
	prefs.longBreak.SetText(form.LongBreakDuration)
	prefs.audio.SetChecked(form.AudioNotifications)
	prefs.browser.SetChecked(form.BrowserNotifications)
}

// Form returns the values currently shown.
func (prefs *Window) Form() settings.Form {
	return settings.Form{
		FocusDuration:        prefs.focus.Text,
		ShortBreakDuration:   prefs.shortBreak.Text,
		LongBreakDuration:    prefs.longBreak.Text,
		AudioNotifications:   prefs.audio.Checked,
		BrowserNotifications: prefs.browser.Checked,
	}
}

func (prefs *Window) handleSave() {
	if prefs.onSave != nil {
		prefs.onSave(prefs.Form())
	}
	prefs.window.Hide()
}

func (prefs *Window) handleReset() {
	if prefs.defaults == nil {
		return
	}
	prefs.SetForm(prefs.defaults())
}
