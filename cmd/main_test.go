package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/settings"
	"pomodoro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config using a yaml store inside a temp dir and
// returns the config path and the store path.
func writeTestConfig(t *testing.T, backend string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store."+backend)
	cfgPath := filepath.Join(dir, "config.yaml")
	contents := "store:\n  backend: " + backend + "\n  path: " + storePath + "\ntick_interval: 1ms\nwatch_store: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(contents), 0o600))
	return cfgPath, storePath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSettingsShowDefaults(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendYAML)

	out, err := execute(t, "--config", cfgPath, "settings", "show", "-o", "json")
	require.NoError(t, err)

	var shown model.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, model.DefaultSettings(), shown)
}

func TestSettingsSetPersists(t *testing.T) {
	cfgPath, storePath := writeTestConfig(t, config.BackendYAML)

	out, err := execute(t, "--config", cfgPath, "settings", "set", "--focus", "45", "--short-break", "abc", "--audio=false")
	require.NoError(t, err)
	assert.Contains(t, out, "focus_duration: 45")

	store := settings.New(storage.NewYAMLFile(storePath), nil)
	require.NoError(t, store.Load())
	current := store.Current()
	assert.Equal(t, 45, current.FocusDuration)
	assert.Equal(t, 5, current.ShortBreakDuration)
	assert.False(t, current.AudioNotifications)
	assert.True(t, current.BrowserNotifications)
}

func TestSettingsResetPreviewsUnlessSaved(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendSQLite)
	_, err := execute(t, "--config", cfgPath, "settings", "set", "--focus", "50")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgPath, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "focus_duration: 25")

	out, err = execute(t, "--config", cfgPath, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "focus_duration: 50")

	_, err = execute(t, "--config", cfgPath, "settings", "reset", "--save")
	require.NoError(t, err)
	out, err = execute(t, "--config", cfgPath, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "focus_duration: 25")
}

func TestThemeCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendYAML)

	out, err := execute(t, "--config", cfgPath, "theme", "ocean")
	require.NoError(t, err)
	assert.Equal(t, "ocean\n", out)

	out, err = execute(t, "--config", cfgPath, "theme")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ocean (available: default, dark, light, forest, ocean)"))

	_, err = execute(t, "--config", cfgPath, "theme", "neon")
	assert.ErrorIs(t, err, model.ErrUnknownTheme)
}

func TestRunCompletesOneCycle(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendYAML)
	_, err := execute(t, "--config", cfgPath, "settings", "set", "--short-break", "1", "--notifications=false")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgPath, "run", "--mode", "shortBreak", "--cycles", "1", "--quiet")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 62)
	assert.Equal(t, "01:00 - Pomodoro Vibe", lines[0])
	assert.Equal(t, "00:59 - Pomodoro Vibe", lines[1])
	assert.Equal(t, "00:00 - Pomodoro Vibe", lines[60])
	assert.Equal(t, "Short Break time is up! Time for Focus.", lines[61])
}

func TestRunRejectsUnknownMode(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendMemory)

	_, err := execute(t, "--config", cfgPath, "run", "--mode", "nap")
	assert.ErrorIs(t, err, model.ErrUnknownMode)
}

func TestPreferencesBackendNeedsDesktop(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, config.BackendPreferences)

	_, err := execute(t, "--config", cfgPath, "settings", "show")
	assert.ErrorContains(t, err, "needs the desktop app")
}

func TestOpenStoreDefaultPaths(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "custom.yaml")

	opened, err := openStore(cfg, config.BackendYAML, nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendYAML, opened.backend)
	assert.Equal(t, cfg.Store.Path, opened.path)
	require.NoError(t, opened.close())

	cfg.Store.Backend = config.BackendMemory
	opened, err = openStore(cfg, config.BackendYAML, nil)
	require.NoError(t, err)
	assert.Empty(t, opened.path)
}
