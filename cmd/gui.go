package main

import (
	"context"
	"errors"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/settings"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timerwindow"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

const appID = "com.pomodorovibe.app"

// fyneNotifier shows completion notifications through the fyne app.
type fyneNotifier struct {
	app fyne.App
}

func (notifier fyneNotifier) Permitted() bool {
	return true
}

func (notifier fyneNotifier) Notify(title, body string) error {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}

func newGUICmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the desktop timer window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), cfg)
		},
	}
}

func runGUI(ctx context.Context, cfg config.Config) error {
	logger := pslog.Ctx(ctx)
	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn("pomodoro is already running")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())

	opened, err := openStore(cfg, config.BackendPreferences, fyneApp.Preferences())
	if err != nil {
		return err
	}
	defer func() {
		_ = opened.close()
	}()
	logger = logger.With("backend", opened.backend)

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := settings.New(opened.kv, logger)
	player := platform.NewSoundPlayer(resources.CompletionSound())
	defer closeSound(logger, player)
	dispatcher := notify.New(store, player, fyneNotifier{app: fyneApp}, logger)
	sess := session.New(ctx, store, session.Options{
		Keeper:     timekeeper.Config{TickInterval: cfg.TickInterval},
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	defer sess.Close()

	var prefsWindow *preferences.Window
	timerWindow := timerwindow.New(fyneApp, timerwindow.Actions{
		Start:      sess.Start,
		Pause:      sess.Pause,
		Reset:      sess.Reset,
		SwitchMode: sess.SwitchMode,
		SetTheme: func(theme model.Theme) {
			if err := sess.SetTheme(theme); err != nil {
				logger.Warn("theme not persisted", "err", err)
			}
		},
		OpenSettings: func() {
			prefsWindow.Show(sess.Form())
		},
	})
	dispatcher.SetAdvisory(timerWindow.Advise)
	prefsWindow = preferences.New(fyneApp, sess.Form(), sess.DefaultForm, func(form settings.Form) {
		if _, err := sess.SaveSettings(form); err != nil {
			timerWindow.Advise("Settings applied but could not be saved.")
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:     timerWindow.Show,
			OnStart:    sess.Start,
			OnPause:    sess.Pause,
			OnReset:    sess.Reset,
			OnMode:     sess.SwitchMode,
			OnSettings: func() { prefsWindow.Show(sess.Form()) },
			OnQuit:     fyneApp.Quit,
		})
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		timerWindow.Window().SetMaster()
	}

	render := func() {
		display := sess.Display()
		timerWindow.Update(display)
		if trayManager != nil {
			fyne.Do(func() { trayManager.Update(display) })
		}
	}
	sess.Settings().OnChange(func(model.Settings) { render() })

	events := sess.Subscribe(64)
	go func() {
		for range events {
			render()
		}
	}()
	opened.watch(ctx, cfg, sess.Reload)

	stopped := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			fyne.Do(fyneApp.Quit)
		case <-stopped:
		}
	}()

	timerWindow.Render(sess.Display())
	if trayManager != nil {
		trayManager.Update(sess.Display())
	}
	timerWindow.Show()
	logger.Info("desktop timer started")
	fyneApp.Run()
	close(stopped)
	return nil
}
