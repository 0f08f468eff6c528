// Package cache stores annotation service responses so repeated analyses
// of the same text do not re-run the expensive NLP model. Keys are content
// hashes; entries are opaque bytes (JSON documents) with a TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry TTLs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a piece of content (typically the
// annotation service base URL, model name, and document text joined by
// separators). The version segment invalidates old entries when the cached
// schema changes.
func Key(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "hearsay:v1:" + hex.EncodeToString(sum[:])
}
