package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Disk is the persistent cache layer: one JSON entry file per key, expiry
// checked on read. Annotation payloads survive process restarts, which
// matters because a single transformer-annotated article can take seconds
// to produce.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache rooted at dir with the given default TTL.
// The directory is created lazily on first write.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the entry for key if present and unexpired. Expired entries
// are removed on the spot.
func (d *Disk) Get(key string) ([]byte, bool) {
	path := d.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Data, true
}

// Set stores value under key; ttl 0 uses the default TTL.
func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.ttl
	}

	data, err := json.Marshal(diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(d.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for key.
func (d *Disk) Delete(key string) error {
	return os.Remove(d.path(key))
}

// Clear removes the whole cache directory.
func (d *Disk) Clear() error {
	return os.RemoveAll(d.dir)
}

// path maps a key to its entry file. Key separators are flattened so the
// name is portable.
func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, strings.ReplaceAll(key, ":", "_")+".cache")
}
