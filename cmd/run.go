package main

import (
	"context"
	"fmt"
	"io"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/settings"
	"pomodoro/resources"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newRunCmd(cfgPath *string) *cobra.Command {
	var cycles int
	var modeName string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the countdown headless, printing the clock each second",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseMode(modeName)
			if err != nil {
				return err
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			opened, err := openStore(cfg, config.BackendYAML, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = opened.close()
			}()

			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			store := settings.New(opened.kv, logger)
			var sound notify.Sound
			if !quiet {
				player := platform.NewSoundPlayer(resources.CompletionSound())
				defer closeSound(logger, player)
				sound = player
			}
			dispatcher := notify.New(store, sound, platform.NewDesktopNotifier(config.AppName), logger)
			sess := session.New(ctx, store, session.Options{
				Keeper:     timekeeper.Config{TickInterval: cfg.TickInterval},
				Dispatcher: dispatcher,
				Logger:     logger,
			})
			defer sess.Close()
			opened.watch(ctx, cfg, sess.Reload)

			sess.SwitchMode(mode)
			return runHeadless(ctx, cmd.OutOrStdout(), sess, cycles)
		},
	}
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "stop after this many completed timers (0 runs until interrupted)")
	cmd.Flags().StringVarP(&modeName, "mode", "m", model.ModeFocus.String(), "mode to start in (focus, shortBreak, longBreak)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not play the completion sound")
	return cmd
}

// runHeadless starts the countdown and prints one clock line per tick. Each
// completion is announced and the next mode is started until cycles timers
// have completed or ctx is cancelled.
func runHeadless(ctx context.Context, out io.Writer, sess *session.Session, cycles int) error {
	events := sess.Subscribe(256)
	_, _ = fmt.Fprintln(out, sess.Display().Title)
	sess.Start()

	completed := 0
	for {
		select {
		case <-ctx.Done():
			sess.Pause()
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch event.Type {
			case timekeeper.EventTick:
				_, _ = fmt.Fprintln(out, session.Title(event.RemainingSeconds))
			case timekeeper.EventComplete:
				completed++
				_, _ = fmt.Fprintln(out, notify.Body(event.From, event.Mode))
				if cycles > 0 && completed >= cycles {
					return nil
				}
				sess.Start()
			}
		}
	}
}

func closeSound(logger pslog.Logger, player platform.SoundPlayer) {
	if err := player.Close(); err != nil {
		logger.Warn("sound cleanup failed", "err", err)
	}
}
