package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache implements ReadWriter using one JSON file per key
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if needed
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Read implements Reader interface
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check if expired
	if maxAge > 0 && time.Since(entry.FetchedAt) > maxAge {
		return &entry, false // Return entry but mark as expired
	}

	return &entry, true
}

// Write implements Writer interface
func (fc *FileCache) Write(key string, entry *Entry) error {
	path := fc.path(key)
	entry.FetchedAt = time.Now()

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename (atomic operation)
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// KeyFor derives a filename-safe key from the given parts
func KeyFor(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:]) + ".json"
}

// path generates the full filesystem path for a cache key
func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, filepath.Base(key))
}

// Ensure FileCache implements the ReadWriter interface
var _ ReadWriter = (*FileCache)(nil)
