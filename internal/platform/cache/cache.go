package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte-oriented cache with TTL expiry. Keys are free-form strings;
// callers are responsible for namespacing.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// DeletePrefix removes every key that starts with prefix. Used to
	// invalidate all cached calendar views after an appointment write.
	DeletePrefix(ctx context.Context, prefix string)
}

// entry holds a cached value and its expiration time.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-memory Cache with lazy expiration. It backs the
// server when no REDIS_URL is configured and the tests.
type Memory struct {
	entries map[string]*entry
	mu      sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*entry),
	}
}

// Get retrieves a value from the cache. Performs lazy expiration: deletes the
// entry and returns a miss if it has expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = &entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.entries, k)
		}
	}
}

// StartCleanup runs a background goroutine that periodically removes expired
// entries. It stops when the context is cancelled.
func (m *Memory) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				now := time.Now()
				for k, v := range m.entries {
					if now.After(v.expiresAt) {
						delete(m.entries, k)
					}
				}
				m.mu.Unlock()
			}
		}
	}()
}
