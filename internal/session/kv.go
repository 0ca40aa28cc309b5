package session

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// KV is the string key-value backend sessions are persisted in.
// Get reports a missing key as appErrors.ErrCacheMiss.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryKV keeps sessions in process memory.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryKV returns an empty in-process store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", appErrors.ErrCacheMiss
	}
	if entry.expired(m.now()) {
		m.evict(key)
		return "", appErrors.ErrCacheMiss
	}
	return entry.value, nil
}

// evict deletes key only if it is still expired under the write lock, so a
// Set racing with Get keeps its fresh value.
func (m *MemoryKV) evict(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.items[key]; ok && entry.expired(m.now()) {
		delete(m.items, key)
	}
}

// Set stores value; a zero ttl never expires.
func (m *MemoryKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes keys, ignoring missing ones.
func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.items, key)
	}
	m.mu.Unlock()
	return nil
}
