// Package cache provides a string-keyed result cache for projection runs so
// repeated plans for an unchanged profile skip the simulation work.
package cache

import "sync"

// CacheRepository is a string-keyed cache. Implementations must be safe for
// concurrent use.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Memory is an in-process CacheRepository, also used as the test double.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
