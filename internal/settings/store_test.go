package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	getErr error
	setErr error
	sets   int
}

func (kv *failingKV) Get(string) (string, bool, error) {
	return "", false, kv.getErr
}

func (kv *failingKV) Set(string, string) error {
	kv.sets++
	return kv.setErr
}

func persisted(t *testing.T, kv KeyValue) map[string]any {
	t.Helper()
	raw, ok, err := kv.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	record := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	return record
}

func TestNewHoldsDefaults(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	assert.Equal(t, model.DefaultSettings(), store.Current())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	kv := storage.NewMemory()
	store := New(kv, nil)
	require.NoError(t, store.SetTheme(model.ThemeOcean))

	saved, err := store.Save(Form{
		FocusDuration:        "50",
		ShortBreakDuration:   "10",
		LongBreakDuration:    "30",
		AudioNotifications:   false,
		BrowserNotifications: true,
	})
	require.NoError(t, err)

	fresh := New(kv, nil)
	require.NoError(t, fresh.Load())
	assert.Equal(t, saved, fresh.Current())
	assert.Equal(t, model.Settings{
		FocusDuration:        50,
		ShortBreakDuration:   10,
		LongBreakDuration:    30,
		AudioNotifications:   false,
		BrowserNotifications: true,
		Theme:                model.ThemeOcean,
	}, fresh.Current())
}

func TestSaveFallsBackPerField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "non-numeric", input: "abc", want: 25},
		{name: "empty", input: "", want: 25},
		{name: "zero", input: "0", want: 25},
		{name: "negative", input: "-5", want: 25},
		{name: "trailing junk", input: "30min", want: 30},
		{name: "decimal", input: "12.5", want: 12},
		{name: "padded", input: "  40", want: 40},
		{name: "one day", input: "1440", want: 1440},
		{name: "longer than a day", input: "1441", want: 25},
		{name: "overflows minutes to seconds", input: "200000000000000000", want: 25},
		{name: "overflows int", input: "99999999999999999999999", want: 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := New(storage.NewMemory(), nil)
			saved, err := store.Save(Form{
				FocusDuration:      tc.input,
				ShortBreakDuration: "7",
				LongBreakDuration:  "20",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, saved.FocusDuration)
			assert.Equal(t, 7, saved.ShortBreakDuration)
			assert.Equal(t, 20, saved.LongBreakDuration)
		})
	}
}

func TestSavePersistsFullRecord(t *testing.T) {
	kv := storage.NewMemory()
	store := New(kv, nil)

	_, err := store.Save(Form{FocusDuration: "abc", ShortBreakDuration: "3", LongBreakDuration: "x"})
	require.NoError(t, err)

	record := persisted(t, kv)
	assert.Equal(t, map[string]any{
		"focusDuration":        float64(25),
		"shortBreakDuration":   float64(3),
		"longBreakDuration":    float64(15),
		"audioNotifications":   false,
		"browserNotifications": false,
		"theme":                "default",
	}, record)
}

func TestSetThemePersistsImmediately(t *testing.T) {
	kv := storage.NewMemory()
	store := New(kv, nil)

	require.NoError(t, store.SetTheme(model.ThemeDark))

	assert.Equal(t, model.ThemeDark, store.Current().Theme)
	record := persisted(t, kv)
	assert.Equal(t, "dark", record["theme"])
	assert.Equal(t, float64(25), record["focusDuration"])
}

func TestSavePreservesTheme(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	require.NoError(t, store.SetTheme(model.ThemeForest))

	saved, err := store.Save(store.Form())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeForest, saved.Theme)
}

func TestDefaultFormDoesNotCommit(t *testing.T) {
	kv := storage.NewMemory()
	store := New(kv, nil)
	_, err := store.Save(Form{FocusDuration: "45", ShortBreakDuration: "9", LongBreakDuration: "25"})
	require.NoError(t, err)
	before := store.Current()

	form := store.DefaultForm()

	assert.Equal(t, "25", form.FocusDuration)
	assert.Equal(t, "5", form.ShortBreakDuration)
	assert.Equal(t, "15", form.LongBreakDuration)
	assert.True(t, form.AudioNotifications)
	assert.True(t, form.BrowserNotifications)
	assert.Equal(t, before, store.Current())
	assert.Equal(t, float64(45), persisted(t, kv)["focusDuration"])

	saved, err := store.Save(form)
	require.NoError(t, err)
	assert.Equal(t, 25, saved.FocusDuration)
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	require.NoError(t, store.Load())
	assert.Equal(t, model.DefaultSettings(), store.Current())
}

func TestLoadMalformedKeepsCurrent(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(StorageKey, "{not json"))
	store := New(kv, nil)

	require.NoError(t, store.Load())
	assert.Equal(t, model.DefaultSettings(), store.Current())
}

func TestLoadMergesPartialRecordOverDefaults(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(StorageKey, `{
		"focusDuration": 40,
		"shortBreakDuration": "ten",
		"longBreakDuration": 200000000000000000,
		"audioNotifications": false,
		"browserNotifications": null,
		"theme": "neon"
	}`))
	store := New(kv, nil)

	require.NoError(t, store.Load())
	assert.Equal(t, model.Settings{
		FocusDuration:        40,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		AudioNotifications:   false,
		BrowserNotifications: true,
		Theme:                model.ThemeDefault,
	}, store.Current())
}

func TestLoadBackendErrorIsReturned(t *testing.T) {
	store := New(&failingKV{getErr: errors.New("disk gone")}, nil)

	err := store.Load()
	assert.ErrorContains(t, err, "disk gone")
	assert.Equal(t, model.DefaultSettings(), store.Current())
}

func TestSaveCommitsEvenWhenPersistFails(t *testing.T) {
	kv := &failingKV{setErr: errors.New("read-only")}
	store := New(kv, nil)

	saved, err := store.Save(Form{FocusDuration: "35", ShortBreakDuration: "5", LongBreakDuration: "15"})
	assert.ErrorContains(t, err, "read-only")
	assert.Equal(t, 35, saved.FocusDuration)
	assert.Equal(t, 35, store.Current().FocusDuration)
	assert.Equal(t, 1, kv.sets)
}

func TestOnChangeFiresOnCommit(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	var seen []model.Theme
	store.OnChange(func(settings model.Settings) {
		seen = append(seen, settings.Theme)
	})

	require.NoError(t, store.SetTheme(model.ThemeLight))
	_, err := store.Save(store.Form())
	require.NoError(t, err)
	_ = store.DefaultForm()

	assert.Equal(t, []model.Theme{model.ThemeLight, model.ThemeLight}, seen)
}

func TestDurationFor(t *testing.T) {
	store := New(storage.NewMemory(), nil)
	_, err := store.Save(Form{FocusDuration: "50", ShortBreakDuration: "8", LongBreakDuration: "22"})
	require.NoError(t, err)

	assert.Equal(t, 50, store.DurationFor(model.ModeFocus))
	assert.Equal(t, 8, store.DurationFor(model.ModeShortBreak))
	assert.Equal(t, 22, store.DurationFor(model.ModeLongBreak))
}
