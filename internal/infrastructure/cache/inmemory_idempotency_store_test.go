package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first mark returns true", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second mark returns false", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "short-lived", -time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.MarkProcessed(ctx, "short-lived", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("unknown key is not processed", func(t *testing.T) {
		ok, err := store.IsProcessed(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("marked key is processed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "key-2", time.Minute)
		require.NoError(t, err)

		ok, err := store.IsProcessed(ctx, "key-2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired key is not processed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "gone", -time.Second)
		require.NoError(t, err)

		ok, err := store.IsProcessed(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "expired", -time.Second)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "live", time.Minute)
	require.NoError(t, err)

	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
