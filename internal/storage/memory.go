package storage

import "sync"

// Memory is a process-local key-value store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]string{}}
}

// Get returns the value stored under key.
func (store *Memory) Get(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.entries[key]
	return value, ok, nil
}

// Set replaces the value stored under key.
func (store *Memory) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[key] = value
	return nil
}
