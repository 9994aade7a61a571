package cache

import (
	"context"
	"time"
)

// Store is a best-effort cache. Failures are contained by the implementation:
// Get reports a miss, Set and Delete log and return.
type Store interface {
	// Get decodes the cached value for key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete evicts the given keys
	Delete(ctx context.Context, keys ...string)

	// DeletePrefix evicts every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string)
}
