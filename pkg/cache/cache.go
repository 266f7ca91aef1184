// Package cache provides a byte cache for rendered circuit artifacts.
//
// Rendering a circuit is cheap but not free (SVG assembly, Graphviz for
// the precedence view), and the HTTP server re-renders published circuits
// on every fetch. Artifacts are cached under a key derived from the
// document hash and the output format, so a changed document never hits a
// stale entry.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by implementations that distinguish misses from
// failures. FileCache reports misses via the ok return instead.
var ErrCacheMiss = errors.New("cache miss")

// TTLArtifact is the lifetime of cached rendered artifacts. Keys embed the
// document hash, so expiry only bounds disk growth.
const TTLArtifact = 24 * time.Hour

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey returns the cache key for a rendered artifact: the circuit
// document hash scoped by output format.
func ArtifactKey(docHash, format string) string {
	return fmt.Sprintf("render:%s:%s", format, docHash)
}
