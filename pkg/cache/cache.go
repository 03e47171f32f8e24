package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations must treat a
// miss as (found=false, nil error) and leave dest untouched on miss.
type Cache interface {
	// Get reads the value stored under key and unmarshals it into dest.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
