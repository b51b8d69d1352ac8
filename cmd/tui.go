package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodoro/internal/config"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/settings"
	"pomodoro/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newTUICmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			logFile, err := openTUILog(*cfgPath)
			if err != nil {
				return err
			}
			defer logFile.Close()
			logger := pslog.LoggerFromEnv(
				pslog.WithEnvWriter(logFile),
				pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
			)
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)

			opened, err := openStore(cfg, config.BackendYAML, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = opened.close()
			}()

			// The bell and advisories reach the terminal through the program,
			// which is built once the session exists.
			var program *tea.Program
			send := func(msg tea.Msg) {
				program.Send(msg)
			}
			store := settings.New(opened.kv, logger)
			dispatcher := notify.New(store, tui.Bell{Send: send}, platform.NewDesktopNotifier(config.AppName), logger)
			sess := session.New(ctx, store, session.Options{
				Keeper:     timekeeper.Config{TickInterval: cfg.TickInterval},
				Dispatcher: dispatcher,
				Logger:     logger,
			})
			defer sess.Close()

			program = tui.NewProgram(ctx, sess)
			dispatcher.SetAdvisory(func(message string) {
				send(tui.AdvisoryMsg(message))
			})
			opened.watch(ctx, cfg, sess.Reload)

			logger.Info("terminal timer started", "backend", opened.backend)
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			return nil
		},
	}
}

// openTUILog opens tui.log next to the config file.
func openTUILog(cfgPath string) (*os.File, error) {
	if cfgPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		cfgPath = defaultPath
	}
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tui log: %w", err)
	}
	return file, nil
}
