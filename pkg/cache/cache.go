// Package cache stores rendered banner artifacts.
//
// Only seeded renders are cacheable: a seed fully determines a banner, so the
// same options always produce the same bytes. Keys are content hashes of the
// render options (see [ArtifactKey]).
//
// Backends:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// [Scoped] namespaces any backend under a key prefix.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

// scoped prefixes every key before delegating.
type scoped struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of c whose keys live under prefix. Closing the view
// closes c.
func Scoped(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	return &scoped{inner: c, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }

var (
	_ Cache = NullCache{}
	_ Cache = (*scoped)(nil)
)
