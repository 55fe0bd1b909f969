package core

import "context"

// Cache is a key-value store with TTL semantics. It never fails
// loudly: backend errors are logged by the implementation and surfaced
// to the caller as a plain miss, per the original CacheManager's
// swallow-and-warn behavior.
type Cache interface {
	// Get returns the stored entry and true on a hit, or a zero value
	// and false on a miss (including backend failure).
	Get(ctx context.Context, key string) (CacheEntry, bool)

	// Set stores entry under key with the given TTL. Best effort;
	// overwrites on collision; a storage failure is logged, not
	// returned.
	Set(ctx context.Context, key string, entry CacheEntry, ttlSeconds int)

	// Invalidate deletes every key matching a glob-style pattern. Used
	// operationally, not in the request path.
	Invalidate(ctx context.Context, pattern string) error

	// Close releases backend resources.
	Close() error
}
