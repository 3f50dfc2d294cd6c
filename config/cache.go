package config

import (
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type cachedRC struct {
	modTime time.Time
	size    int64
	rc      *RCFile
}

// RCCache memoizes parsed rc files so a batch over one directory reads its
// rc file once. An entry is reparsed when the file's mod time or size changes.
type RCCache struct {
	cache *gocache.Cache
}

// NewRCCache creates a cache whose entries expire after ttl
func NewRCCache(ttl, cleanupInterval time.Duration) *RCCache {
	return &RCCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Load returns the parsed rc file at path, reading it only when needed
func (c *RCCache) Load(path string) (*RCFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		// Missing or unreadable: let LoadRC decide, and don't cache it
		return LoadRC(path)
	}

	if v, found := c.cache.Get(path); found {
		entry := v.(*cachedRC)
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.rc, nil
		}
	}

	rc, err := LoadRC(path)
	if err != nil {
		return nil, err
	}
	c.cache.Set(path, &cachedRC{modTime: info.ModTime(), size: info.Size(), rc: rc}, gocache.DefaultExpiration)
	return rc, nil
}

// Len returns the number of cached rc files
func (c *RCCache) Len() int {
	return c.cache.ItemCount()
}

// Clear drops every cached entry
func (c *RCCache) Clear() {
	c.cache.Flush()
}
