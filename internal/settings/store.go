package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"pomodoro/internal/core/model"

	"pkt.systems/pslog"
)

// StorageKey is the key the settings record is persisted under.
const StorageKey = "pomodoroSettings"

// KeyValue is the persistent store the settings record lives in.
// Get reports ok == false for a missing key.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns the committed settings and persists them as one record.
type Store struct {
	mu        sync.RWMutex
	kv        KeyValue
	current   model.Settings
	log       pslog.Logger
	listeners []func(model.Settings)
}

// New returns a store holding the default settings. Call Load to restore
// the persisted record.
func New(kv KeyValue, logger pslog.Logger) *Store {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Store{
		kv:      kv,
		current: model.DefaultSettings(),
		log:     logger,
	}
}

// Current returns a copy of the committed settings.
func (store *Store) Current() model.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current
}

// DurationFor returns the committed minutes for a mode.
func (store *Store) DurationFor(mode model.Mode) int {
	return store.Current().DurationFor(mode)
}

// Form returns the editable mirror of the committed settings.
func (store *Store) Form() Form {
	return FormFrom(store.Current())
}

// DefaultForm returns a form filled with the built-in defaults. It only
// previews the defaults; nothing is committed until Save.
func (store *Store) DefaultForm() Form {
	return FormFrom(model.DefaultSettings())
}

// OnChange registers a listener called after every commit.
func (store *Store) OnChange(listener func(model.Settings)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listeners = append(store.listeners, listener)
}

// Load restores the persisted record. A missing or unreadable record leaves
// the current settings untouched; fields that are missing or invalid keep
// their defaults. Only backend failures are returned.
func (store *Store) Load() error {
	raw, ok, err := store.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		store.log.Debug("settings not persisted yet, using defaults")
		return nil
	}

	loaded, err := decodeRecord(raw)
	if err != nil {
		store.log.Warn("persisted settings unreadable, keeping defaults", "err", err)
		return nil
	}

	store.mu.Lock()
	store.current = loaded
	store.mu.Unlock()
	store.notify(loaded)
	return nil
}

// Save commits the form and persists the full record. The in-memory
// settings are committed even when the write fails.
func (store *Store) Save(form Form) (model.Settings, error) {
	store.mu.Lock()
	store.current = form.Apply(store.current)
	committed := store.current
	err := store.persistLocked()
	store.mu.Unlock()

	store.notify(committed)
	return committed, err
}

// SetTheme commits and persists a new theme immediately.
func (store *Store) SetTheme(theme model.Theme) error {
	store.mu.Lock()
	store.current.Theme = theme
	committed := store.current
	err := store.persistLocked()
	store.mu.Unlock()

	store.notify(committed)
	return err
}

func (store *Store) persistLocked() error {
	serialized, err := json.Marshal(store.current)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := store.kv.Set(StorageKey, string(serialized)); err != nil {
		store.log.Warn("settings persist failed", "err", err)
		return fmt.Errorf("persist settings: %w", err)
	}
	store.log.Debug("settings persisted", "theme", store.current.Theme.String())
	return nil
}

func (store *Store) notify(settings model.Settings) {
	store.mu.RLock()
	listeners := slices.Clone(store.listeners)
	store.mu.RUnlock()
	for _, listener := range listeners {
		listener(settings)
	}
}

// decodeRecord merges a serialized record over the defaults one field at a
// time, so a single bad field does not discard the rest.
func decodeRecord(raw string) (model.Settings, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings record: %w", err)
	}

	settings := model.DefaultSettings()
	decodeMinutes(fields["focusDuration"], &settings.FocusDuration)
	decodeMinutes(fields["shortBreakDuration"], &settings.ShortBreakDuration)
	decodeMinutes(fields["longBreakDuration"], &settings.LongBreakDuration)
	decodeBool(fields["audioNotifications"], &settings.AudioNotifications)
	decodeBool(fields["browserNotifications"], &settings.BrowserNotifications)

	var theme model.Theme
	if fields["theme"] != nil && json.Unmarshal(fields["theme"], &theme) == nil {
		settings.Theme = theme
	}
	return settings, nil
}

func decodeMinutes(raw json.RawMessage, target *int) {
	var minutes int
	if raw == nil || json.Unmarshal(raw, &minutes) != nil || !model.ValidDuration(minutes) {
		return
	}
	*target = minutes
}

func decodeBool(raw json.RawMessage, target *bool) {
	var value bool
	if raw == nil || string(raw) == "null" || json.Unmarshal(raw, &value) != nil {
		return
	}
	*target = value
}
