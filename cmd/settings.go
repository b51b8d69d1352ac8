package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/settings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"pkt.systems/pslog"
)

func newSettingsCmd(cfgPath *string) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the persisted timer settings",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "yaml", "output format (yaml or json)")

	cmd.AddCommand(newSettingsShowCmd(cfgPath, &output))
	cmd.AddCommand(newSettingsSetCmd(cfgPath, &output))
	cmd.AddCommand(newSettingsResetCmd(cfgPath, &output))
	return cmd
}

func newSettingsShowCmd(cfgPath, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the committed settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsStore(cmd, *cfgPath, func(store *settings.Store) error {
				return printSettings(cmd.OutOrStdout(), *output, store.Current())
			})
		},
	}
}

func newSettingsSetCmd(cfgPath, output *string) *cobra.Command {
	var focus, shortBreak, longBreak string
	var audio, browser bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; durations follow the same rules as the settings form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsStore(cmd, *cfgPath, func(store *settings.Store) error {
				form := store.Form()
				flags := cmd.Flags()
				if flags.Changed("focus") {
					form.FocusDuration = focus
				}
				if flags.Changed("short-break") {
					form.ShortBreakDuration = shortBreak
				}
				if flags.Changed("long-break") {
					form.LongBreakDuration = longBreak
				}
				if flags.Changed("audio") {
					form.AudioNotifications = audio
				}
				if flags.Changed("notifications") {
					form.BrowserNotifications = browser
				}
				committed, err := store.Save(form)
				if err != nil {
					return err
				}
				return printSettings(cmd.OutOrStdout(), *output, committed)
			})
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "focus minutes")
	cmd.Flags().StringVar(&shortBreak, "short-break", "", "short break minutes")
	cmd.Flags().StringVar(&longBreak, "long-break", "", "long break minutes")
	cmd.Flags().BoolVar(&audio, "audio", true, "play a sound when a timer ends")
	cmd.Flags().BoolVar(&browser, "notifications", true, "show a desktop notification when a timer ends")
	return cmd
}

func newSettingsResetCmd(cfgPath, output *string) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Preview the default settings; --save commits them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsStore(cmd, *cfgPath, func(store *settings.Store) error {
				form := store.DefaultForm()
				preview := form.Apply(store.Current())
				if !save {
					return printSettings(cmd.OutOrStdout(), *output, preview)
				}
				committed, err := store.Save(form)
				if err != nil {
					return err
				}
				return printSettings(cmd.OutOrStdout(), *output, committed)
			})
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "commit the defaults")
	return cmd
}

func newThemeCmd(cfgPath *string) *cobra.Command {
	names := make([]string, 0, len(model.Themes))
	for _, theme := range model.Themes {
		names = append(names, theme.String())
	}
	return &cobra.Command{
		Use:       "theme [name]",
		Short:     "Print or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsStore(cmd, *cfgPath, func(store *settings.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					_, err := fmt.Fprintf(out, "%s (available: %s)\n", store.Current().Theme, strings.Join(names, ", "))
					return err
				}
				theme, err := model.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if err := store.SetTheme(theme); err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, theme)
				return err
			})
		},
	}
}

func withSettingsStore(cmd *cobra.Command, cfgPath string, fn func(*settings.Store) error) error {
	cfg, err := config.Load(cfgPath)
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

	store := settings.New(opened.kv, pslog.Ctx(cmd.Context()))
	if err := store.Load(); err != nil {
		return err
	}
	return fn(store)
}

func printSettings(out io.Writer, format string, current model.Settings) error {
	switch format {
	case "json":
		encoded, err := json.MarshalIndent(current, "", "  ")
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	case "yaml":
		encoded, err := yaml.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		_, err = out.Write(encoded)
		return err
	default:
		return fmt.Errorf("unknown output format %s", strconv.Quote(format))
	}
}
