package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("key not found")

// ErrUnavailable is returned when the store cannot be reached.
var ErrUnavailable = errors.New("store unavailable")

// Store is the key-value port backing the KV proxy, the visit counter and
// the session manager. Values are opaque strings; a zero TTL means the key
// does not expire.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set unconditionally overwrites key with value. Last write wins.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Incr atomically increments the integer counter under key and returns
	// the new value. A missing key counts as zero.
	Incr(ctx context.Context, key string) (int64, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
