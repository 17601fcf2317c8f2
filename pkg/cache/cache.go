// Package cache provides byte caches for prompt parses and rendered artifacts.
//
// All backends implement [Cache]. Keys are built by a [Keyer] so that every
// caller agrees on the key layout:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	data, hit, err := c.Get(ctx, k.PromptKey("gemini", prompt))
//
// Backends:
//
//   - [FileCache]: sharded JSON files, the CLI default
//   - [MemoryCache]: bounded in-process LRU, the server default
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: never stores anything
package cache

import (
	"context"
	"time"
)

// Cache stores opaque bytes under string keys with an optional TTL.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	PromptTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
