// Package propstore provides the persisted property stores the policy
// engine reads its feature flags and per-key override values from.
package propstore

import (
	"strconv"
	"sync"
)

// Memory is an in-process property store backed by a plain map. The CLI
// seeds it from configuration; tests seed it literally.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Seed copies values into the store, overwriting existing keys.
func (m *Memory) Seed(values map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.data[k] = v
	}
}

// Put stores a single value.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// GetString returns the raw value at key.
func (m *Memory) GetString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// GetBool returns the boolean at key, or def when the key is absent or not
// parseable as a boolean.
func (m *Memory) GetBool(key string, def bool) bool {
	v, ok := m.GetString(key)
	if !ok {
		return def
	}
	return parseBool(v, def)
}

// parseBool accepts the strconv spellings (1/0, t/f, true/false in any
// case) and falls back to def for anything else.
func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
