package ports

import (
	"context"
	"time"
)

// Key/value cache for upstream lookup results.
// Implementations must be safe for concurrent use.
type LookupCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
