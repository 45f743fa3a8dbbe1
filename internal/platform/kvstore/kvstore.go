// Package kvstore provides a small key-value abstraction with TTL semantics.
// Counters and short-lived tokens live here instead of in process-global maps
// so that multiple server instances share one view of the data.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a key-value store with per-key expiry.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the counter at key and returns the new value.
	// The TTL is applied when the counter is first created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
