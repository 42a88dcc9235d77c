// Package cache stores rendered diagram artifacts.
//
// Batches often render the same diagram many times (one question per note
// on an identical board, reruns of a plan). Rendered PNGs are cached under a
// key derived from the diagram's SVG, so identical drawings are rasterised
// once.
//
// Backends:
//   - [FileCache]: JSON entry files under the XDG cache directory (CLI default)
//   - [RedisCache]: shared cache for several machines rendering one deck
//   - [NullCache]: disables caching
//
// Usage:
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.ArtifactKey(svg, "png", 1.0)
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data, nil
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
