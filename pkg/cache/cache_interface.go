package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache contract; the Redis implementation lives
// in the infrastructure layer.
type Cache interface {
	// Get unmarshals the cached value into dest. found reports whether the
	// key existed; on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores the value under key for the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
