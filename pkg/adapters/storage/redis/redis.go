package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

// Store implements storage.Store on top of a shared go-redis client.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStore creates a new Redis-backed store.
func NewStore(client *redis.Client, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// Get returns the value stored under key (storage.Store interface)
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", classify(fmt.Errorf("failed to get %q: %w", key, err))
	}

	return value, nil
}

// Set overwrites key with value (storage.Store interface)
func (s *Store) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return classify(fmt.Errorf("failed to set %q: %w", key, err))
	}

	s.logger.Debug("key set",
		zap.String("key", key),
		zap.Duration("ttl", ttl))

	return nil
}

// Incr atomically increments the counter under key (storage.Store interface)
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, classify(fmt.Errorf("failed to increment %q: %w", key, err))
	}

	return count, nil
}

// Delete removes key; absent keys are not an error (storage.Store interface)
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return classify(fmt.Errorf("failed to delete %q: %w", key, err))
	}

	s.logger.Debug("key deleted",
		zap.String("key", key))

	return nil
}

// classify maps go-redis errors onto the storage sentinel errors so the
// HTTP boundary translates them exactly once.
func classify(err error) error {
	if errors.Is(err, redis.Nil) {
		return storage.ErrNotFound
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, redis.ErrPoolTimeout) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return err
}
