package storage

import "fyne.io/fyne/v2"

// Preferences adapts fyne app preferences to the key-value contract.
// An empty string is treated as an absent key.
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps the given fyne preferences.
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

// Get returns the value stored under key.
func (store *Preferences) Get(key string) (string, bool, error) {
	value := store.prefs.String(key)
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (store *Preferences) Set(key, value string) error {
	store.prefs.SetString(key, value)
	return nil
}
