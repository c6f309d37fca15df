// Package caching is a file-based response cache keyed by URL hash. It keeps
// re-runs from hammering the directory site while an inventory is refetched.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores one file per URL under dir. Entries older than ttl are
// treated as misses; nothing evicts them proactively.
type Cache struct {
	dir string
	ttl time.Duration
}

func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", hash)
}

// Get returns the cached body and true on a fresh hit. Expired or unreadable
// entries are misses.
func (c *Cache) Get(url string) ([]byte, bool) {
	path := filepath.Join(c.dir, c.key(url))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes the body for a URL, replacing any previous entry.
func (c *Cache) Set(url string, data []byte) error {
	path := filepath.Join(c.dir, c.key(url))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}
