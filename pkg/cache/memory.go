package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults for the in-memory cache.
const (
	DefaultMemoryEntries = 512
	DefaultMemoryTTL     = time.Hour
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a bounded LRU with expiring entries, used by the preview
// server. The LRU's own TTL caps every entry; a shorter per-entry ttl given
// to Set is honored on read.
type MemoryCache struct {
	mu     sync.RWMutex
	lru    *lru.LRU[string, memoryEntry]
	closed bool
}

// NewMemoryCache creates a cache holding at most size entries for at most
// ttl. Non-positive values use the defaults.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	return &MemoryCache{
		lru: lru.NewLRU[string, memoryEntry](size, nil, ttl),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrClosed
	}

	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Close purges the cache; later calls return ErrClosed.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.lru.Purge()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)
