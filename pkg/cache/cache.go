// Package cache stores rendered artifacts so unchanged diagrams are not
// laid out again.
//
// Keys are derived from the DOT source and the output format, so any change
// to a diagram's content or styling produces a new key. Two implementations
// are provided:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: never stores anything (--no-cache)
//
// Typical use:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{Format: "png"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactTTL is how long rendered artifacts stay valid.
const ArtifactTTL = 7 * 24 * time.Hour

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}
