package tray

import (
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/session"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	menus []*fyne.Menu
}

func (app *fakeApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.FailNow(t, "menu item not found", label)
	return nil
}

func TestMenuForwardsIntents(t *testing.T) {
	app := &fakeApp{}
	var calls []string
	var modes []model.Mode
	New(app, Callbacks{
		OnStart:    func() { calls = append(calls, "start") },
		OnPause:    func() { calls = append(calls, "pause") },
		OnReset:    func() { calls = append(calls, "reset") },
		OnSettings: func() { calls = append(calls, "settings") },
		OnMode:     func(mode model.Mode) { modes = append(modes, mode) },
	})
	require.Len(t, app.menus, 1)
	menu := app.menus[0]

	findItem(t, menu, "Start").Action()
	findItem(t, menu, "Pause").Action()
	findItem(t, menu, "Reset").Action()
	findItem(t, menu, "Settings").Action()
	findItem(t, menu, "Quit").Action()
	findItem(t, findItem(t, menu, "Mode").ChildMenu, "Long Break").Action()

	assert.Equal(t, []string{"start", "pause", "reset", "settings"}, calls)
	assert.Equal(t, []model.Mode{model.ModeLongBreak}, modes)
}

func TestUpdateMirrorsDisplay(t *testing.T) {
	app := &fakeApp{}
	manager := New(app, Callbacks{})

	manager.Update(session.Display{Minutes: "04", Seconds: "59", Mode: model.ModeShortBreak, Running: true})

	assert.Equal(t, "Short Break 04:59 (running)", manager.Status())
	menu := app.menus[len(app.menus)-1]
	assert.True(t, findItem(t, menu, "Start").Disabled)
	assert.False(t, findItem(t, menu, "Pause").Disabled)
	modes := findItem(t, menu, "Mode").ChildMenu
	assert.True(t, findItem(t, modes, "Short Break").Checked)
	assert.False(t, findItem(t, modes, "Focus").Checked)

	manager.Update(session.Display{Minutes: "25", Seconds: "00", Mode: model.ModeFocus})
	assert.Equal(t, "Focus 25:00 (idle)", manager.Status())
	assert.False(t, findItem(t, menu, "Start").Disabled)
	assert.True(t, findItem(t, menu, "Pause").Disabled)
}
