package tray

import (
	"fmt"

	"pomodoro/internal/core/model"
	"pomodoro/internal/session"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow     func()
	OnStart    func()
	OnPause    func()
	OnReset    func()
	OnMode     func(model.Mode)
	OnSettings func()
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app        App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem, len(model.Modes)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", call(callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", call(callbacks.OnPause))
	manager.pauseItem.Disabled = true
	reset := fyne.NewMenuItem("Reset", call(callbacks.OnReset))

	modeMenu := fyne.NewMenu("")
	for _, mode := range model.Modes {
		mode := mode
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnMode != nil {
				manager.callbacks.OnMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeMenu.Items = append(modeMenu.Items, item)
	}
	manager.modeItems[model.ModeFocus].Checked = true
	modes := fyne.NewMenuItem("Mode", nil)
	modes.ChildMenu = modeMenu

	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", call(callbacks.OnShow)),
		manager.startItem,
		manager.pauseItem,
		reset,
		modes,
		fyne.NewMenuItem("Settings", call(callbacks.OnSettings)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", call(callbacks.OnQuit)),
	)
	app.SetSystemTrayMenu(manager.menu)

	return manager
}

// Update mirrors the timer state into the menu.
func (manager *Manager) Update(display session.Display) {
	state := "idle"
	if display.Running {
		state = "running"
	}
	manager.statusItem.Label = fmt.Sprintf("%s %s:%s (%s)", display.Mode.Label(), display.Minutes, display.Seconds, state)
	manager.startItem.Disabled = display.Running
	manager.pauseItem.Disabled = !display.Running
	for mode, item := range manager.modeItems {
		item.Checked = mode == display.Mode
	}
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
