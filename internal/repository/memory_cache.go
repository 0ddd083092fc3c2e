package repository

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds the in-memory cache
	DefaultMaxEntries = 10000

	sweepInterval = time.Minute
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is an in-process CacheRepository guarded by a RWMutex.
// Expired entries are swept on Set at most once per minute; at capacity the
// entry closest to expiry is evicted.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	maxEntries int
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache creates an empty in-memory cache holding up to DefaultMaxEntries
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithLimit(DefaultMaxEntries)
}

// NewMemoryCacheWithLimit creates an empty cache holding up to maxEntries (minimum 1)
func NewMemoryCacheWithLimit(maxEntries int) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		// re-check under the write lock, a concurrent Set may have refreshed it
		if current, ok := m.data[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := m.now()
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.data[key]
	full := !exists && len(m.data) >= m.maxEntries
	if full || !now.Before(m.nextSweep) {
		m.sweepLocked(now)
		m.nextSweep = now.Add(sweepInterval)
	}
	if !exists && len(m.data) >= m.maxEntries {
		m.evictLocked()
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, including expired ones not swept yet
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryCache) sweepLocked(now time.Time) {
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
}

// evictLocked drops the entry that expires first; entries without expiry go last
func (m *MemoryCache) evictLocked() {
	var (
		victim       string
		victimExpiry time.Time
		found        bool
	)
	for key, entry := range m.data {
		switch {
		case !found:
		case entry.expiresAt.IsZero():
			continue
		case victimExpiry.IsZero() || entry.expiresAt.Before(victimExpiry):
		default:
			continue
		}
		victim, victimExpiry, found = key, entry.expiresAt, true
	}
	if found {
		delete(m.data, victim)
	}
}
