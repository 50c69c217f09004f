package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores fetched page bodies on disk, keyed by URL, for a fixed TTL.
// A nil *Cache is valid and never hits.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a cache rooted at path, creating the directory if needed.
// A ttl <= 0 disables caching and returns a nil Cache.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{path: path, ttl: ttl}, nil
}

func (c *Cache) file(url string) string {
	return filepath.Join(c.path, fmt.Sprintf("%x.html", sha256.Sum256([]byte(url))))
}

// Get returns the cached body for url if present and younger than the TTL.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	filePath := c.file(url)
	info, err := os.Stat(filePath)
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for url. It is a no-op on a nil Cache.
func (c *Cache) Set(url string, data []byte) error {
	if c == nil {
		return nil
	}
	if err := os.WriteFile(c.file(url), data, 0600); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
