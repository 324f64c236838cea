package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// Memory is the default store: a mutex-guarded map. Also the test double for
// everything above it.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Envelope
	ttl     time.Duration

	// Now is injectable for freshness tests.
	Now func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		entries: map[string]Envelope{},
		ttl:     ttl,
		Now:     time.Now,
	}
}

func (m *Memory) Get(key string) (json.RawMessage, bool) {
	m.mu.RLock()
	env, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || !env.Fresh(m.Now(), m.ttl) {
		return nil, false
	}
	return env.Data, true
}

func (m *Memory) GetStale(key string) (json.RawMessage, bool) {
	m.mu.RLock()
	env, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return env.Data, true
}

func (m *Memory) Set(key string, payload json.RawMessage) {
	m.mu.Lock()
	m.entries[key] = Envelope{Data: payload, Timestamp: m.Now()}
	m.mu.Unlock()
}

func (m *Memory) Invalidate(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}
