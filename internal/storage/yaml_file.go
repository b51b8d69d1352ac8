package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const storeFileName = "store.yaml"

// YAMLFile keeps every key in a single YAML document on disk.
type YAMLFile struct {
	mu   sync.Mutex
	path string
}

// NewYAMLFile returns a store backed by the file at path.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// DefaultYAMLPath returns the store location inside the user config dir.
func DefaultYAMLPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, storeFileName), nil
}

// Path returns the backing file path.
func (store *YAMLFile) Path() string {
	return store.path
}

// Get returns the value stored under key.
func (store *YAMLFile) Get(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.readLocked()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set replaces the value stored under key.
func (store *YAMLFile) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.readLocked()
	if err != nil {
		return err
	}
	entries[key] = value
	return store.writeLocked(entries)
}

func (store *YAMLFile) readLocked() (map[string]string, error) {
	entries := map[string]string{}
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &entries); err != nil {
		return nil, fmt.Errorf("parse store yaml: %w", err)
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

func (store *YAMLFile) writeLocked(entries map[string]string) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	serialized, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal store yaml: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "store-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), store.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
