package main

import (
	"context"
	"fmt"
	"path/filepath"

	"pomodoro/internal/config"
	"pomodoro/internal/settings"
	"pomodoro/internal/storage"

	"fyne.io/fyne/v2"
	"pkt.systems/pslog"
)

// openedStore is a settings backend plus what the caller needs to watch
// and release it.
type openedStore struct {
	kv      settings.KeyValue
	backend string
	path    string
	close   func() error
}

// openStore builds the settings backend selected by cfg. prefs is only used
// for the preferences backend and may be nil elsewhere.
func openStore(cfg config.Config, fallback string, prefs fyne.Preferences) (openedStore, error) {
	backend := cfg.Store.BackendOr(fallback)
	opened := openedStore{backend: backend, close: func() error { return nil }}

	switch backend {
	case config.BackendMemory:
		opened.kv = storage.NewMemory()
	case config.BackendPreferences:
		if prefs == nil {
			return openedStore{}, fmt.Errorf("store.backend %q needs the desktop app", backend)
		}
		opened.kv = storage.NewPreferences(prefs)
	case config.BackendYAML:
		path, err := storePath(cfg, "store.yaml")
		if err != nil {
			return openedStore{}, err
		}
		opened.kv = storage.NewYAMLFile(path)
		opened.path = path
	case config.BackendSQLite:
		path, err := storePath(cfg, "store.db")
		if err != nil {
			return openedStore{}, err
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return openedStore{}, err
		}
		opened.kv = db
		opened.path = path
		opened.close = db.Close
	default:
		return openedStore{}, fmt.Errorf("store.backend %q: %w", backend, config.ErrUnknownBackend)
	}
	return opened, nil
}

func storePath(cfg config.Config, fileName string) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	yamlPath, err := storage.DefaultYAMLPath(config.AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(yamlPath), fileName), nil
}

// watch reloads settings whenever another process rewrites the store file.
func (opened openedStore) watch(ctx context.Context, cfg config.Config, reload func() error) {
	if !cfg.WatchStore || opened.path == "" {
		return
	}
	logger := pslog.Ctx(ctx)
	err := storage.WatchFile(ctx, opened.path, func() {
		if err := reload(); err != nil {
			logger.Warn("settings reload failed", "err", err)
		}
	})
	if err != nil {
		logger.Warn("settings watch unavailable", "err", err)
	}
}
