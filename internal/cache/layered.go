package cache

import "time"

// Layered stacks the memory cache in front of the disk cache. Reads check
// memory first and promote disk hits; writes and deletes go to both.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a memory+disk cache. An empty diskDir disables the
// disk layer; the result is then memory-only.
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	l := &Layered{memory: NewMemory(memoryTTL, 10*time.Minute)}
	if diskDir != "" {
		l.disk = NewDisk(diskDir, diskTTL)
	}
	return l
}

// Get checks memory, then disk. A disk hit is promoted into memory with
// the memory layer's default TTL.
func (l *Layered) Get(key string) ([]byte, bool) {
	if v, ok := l.memory.Get(key); ok {
		return v, true
	}
	if l.disk == nil {
		return nil, false
	}
	if v, ok := l.disk.Get(key); ok {
		_ = l.memory.Set(key, v, 0)
		return v, true
	}
	return nil, false
}

// Set writes to both layers.
func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	if l.disk == nil {
		return nil
	}
	return l.disk.Set(key, value, ttl)
}

// Delete removes the key from both layers.
func (l *Layered) Delete(key string) error {
	_ = l.memory.Delete(key)
	if l.disk != nil {
		_ = l.disk.Delete(key)
	}
	return nil
}

// Clear empties both layers.
func (l *Layered) Clear() error {
	_ = l.memory.Clear()
	if l.disk != nil {
		_ = l.disk.Clear()
	}
	return nil
}
