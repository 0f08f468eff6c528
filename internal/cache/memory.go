package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process cache layer. Entries expire on their TTL and a
// background janitor sweeps them out.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and janitor
// sweep interval.
func NewMemory(defaultTTL, sweepEvery time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, sweepEvery)}
}

// Get returns the entry for key if present and unexpired.
func (m *Memory) Get(key string) ([]byte, bool) {
	if v, ok := m.store.Get(key); ok {
		return v.([]byte), true
	}
	return nil, false
}

// Set stores value under key; ttl 0 uses the default TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes the entry for key.
func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear removes every entry.
func (m *Memory) Clear() error {
	m.store.Flush()
	return nil
}
