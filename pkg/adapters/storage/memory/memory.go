package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

// Store implements storage.Store using an in-memory map.
// This is for testing purposes only.
type Store struct {
	entries map[string]entry
	mu      sync.RWMutex
	now     func() time.Time
}

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key (storage.Store interface)
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		return "", storage.ErrNotFound
	}

	return e.value, nil
}

// Set overwrites key with value (storage.Store interface)
func (s *Store) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e

	return nil
}

// Incr atomically increments the counter under key (storage.Store interface)
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if e, ok := s.entries[key]; ok && !s.expired(e) {
		parsed, err := strconv.ParseInt(e.value, 10, 64)
		if err != nil {
			return 0, err
		}
		count = parsed
	}

	count++
	s.entries[key] = entry{value: strconv.FormatInt(count, 10)}

	return count, nil
}

// Delete removes key; absent keys are not an error (storage.Store interface)
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Advance shifts the store's clock forward, expiring entries whose TTL has
// elapsed. Tests use this instead of sleeping.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frozen := s.now().Add(d)
	s.now = func() time.Time { return frozen }
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
