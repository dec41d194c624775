// Package cache provides a byte-oriented cache with TTL expiry. Callers store
// marshaled payloads so a cache hit replays the exact bytes that were written.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with a bounded
// lifetime. Implementations must treat a missing key and an expired key
// identically.
type Cache interface {
	// Get returns the payload for key. The second return is false when the
	// key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores val under key for ttl. A non-positive ttl means the entry
	// never expires.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
}
