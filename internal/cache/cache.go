// Package cache stores text responses on disk with TTL-based expiration.
package cache

import (
	"time"
)

// Entry represents a cached entry with metadata
type Entry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Source    string    `json:"source,omitempty"`
	Body      string    `json:"body"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read retrieves a cache entry by key with TTL validation
	// Returns the entry and true if found and not expired, false otherwise
	Read(key string, maxAge time.Duration) (*Entry, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores a cache entry with the given key
	Write(key string, entry *Entry) error
}

// ReadWriter combines both cache operations
type ReadWriter interface {
	Reader
	Writer
}
