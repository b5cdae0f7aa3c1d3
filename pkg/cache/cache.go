// Package cache stores rendered artifacts keyed by content hash.
//
// Three backends are provided behind the [Cache] interface:
//
//   - [FileCache] for the CLI, one JSON file per entry under the user cache dir
//   - [MemoryCache] for the preview server, a bounded expiring LRU
//   - [RedisCache] for preview servers that share a cache
//
// [NullCache] disables caching. Keys come from a [Keyer]; wrap one in a
// [ScopedKeyer] to give several deployments separate namespaces.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLArtifact applies to rendered artifacts (svg, png, ...). Documents are
	// keyed by content hash, so entries only go stale through renderer changes.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLScene applies to exported scene JSON.
	TTLScene = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTL.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire on its own.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}
