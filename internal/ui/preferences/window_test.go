package preferences

import (
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/settings"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindow(t *testing.T, onSave func(settings.Form)) *Window {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	current := model.DefaultSettings()
	current.FocusDuration = 50
	current.AudioNotifications = false
	defaults := func() settings.Form { return settings.FormFrom(model.DefaultSettings()) }
	return New(app, settings.FormFrom(current), defaults, onSave)
}

func TestWindowShowsForm(t *testing.T) {
	prefs := newWindow(t, nil)

	form := prefs.Form()
	assert.Equal(t, "50", form.FocusDuration)
	assert.Equal(t, "5", form.ShortBreakDuration)
	assert.Equal(t, "15", form.LongBreakDuration)
	assert.False(t, form.AudioNotifications)
	assert.True(t, form.BrowserNotifications)
}

func TestSavePassesRawText(t *testing.T) {
	var saved []settings.Form
	prefs := newWindow(t, func(form settings.Form) {
		saved = append(saved, form)
	})

	prefs.shortBreak.SetText("abc")
	prefs.focus.SetText("30min")
	test.Tap(prefs.audio)
	test.Tap(prefs.saveButton)

	require.Len(t, saved, 1)
	assert.Equal(t, "30min", saved[0].FocusDuration)
	assert.Equal(t, "abc", saved[0].ShortBreakDuration)
	assert.True(t, saved[0].AudioNotifications)
}

func TestResetPreviewsDefaultsWithoutSaving(t *testing.T) {
	saves := 0
	prefs := newWindow(t, func(settings.Form) { saves++ })

	test.Tap(prefs.resetButton)

	assert.Equal(t, "25", prefs.Form().FocusDuration)
	assert.True(t, prefs.Form().AudioNotifications)
	assert.Zero(t, saves)
}

func TestCancelDiscards(t *testing.T) {
	saves := 0
	cancelled := false
	prefs := newWindow(t, func(settings.Form) { saves++ })
	prefs.SetOnCancel(func() { cancelled = true })

	prefs.focus.SetText("99")
	test.Tap(prefs.cancelButton)

	assert.True(t, cancelled)
	assert.Zero(t, saves)

	prefs.Show(settings.FormFrom(model.DefaultSettings()))
	assert.Equal(t, "25", prefs.Form().FocusDuration)
}
