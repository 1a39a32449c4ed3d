// Package storage defines the key-value store port used by the service.
//
// Implementations:
//   - redis: Redis with short per-connection timeouts (production)
//   - memory: In-memory with TTL support for testing
//
// Implementations report failures through the sentinel errors ErrNotFound
// and ErrUnavailable so the HTTP layer can translate them to status codes
// in one place.
package storage
