package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

func TestSetGetRoundtrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "kv:greeting", "hello", 0))

	value, err := store.Get(ctx, "kv:greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", value)
}

func TestGetMissingKey(t *testing.T) {
	store := NewStore()

	_, err := store.Get(context.Background(), "kv:nonexistent")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIncrStrictlyIncreasing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := store.Incr(ctx, "visits")
		require.NoError(t, err)
		require.Equal(t, want, count)
	}
}

func TestIncrNonInteger(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "visits", "not-a-number", 0))

	_, err := store.Incr(ctx, "visits")
	require.Error(t, err)
}

func TestDeleteIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "kv:k", "v", 0))
	require.NoError(t, store.Delete(ctx, "kv:k"))
	require.NoError(t, store.Delete(ctx, "kv:k"))

	_, err := store.Get(ctx, "kv:k")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTTLExpiry(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:tok", `{"username":"user"}`, time.Minute))

	_, err := store.Get(ctx, "session:tok")
	require.NoError(t, err)

	store.Advance(2 * time.Minute)

	_, err = store.Get(ctx, "session:tok")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "kv:k", "v", 0))
	store.Advance(24 * time.Hour)

	value, err := store.Get(ctx, "kv:k")
	require.NoError(t, err)
	require.Equal(t, "v", value)
}
