package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "sid-1", 7))

	userID, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, uint(7), userID)

	require.NoError(t, store.Destroy(ctx, "sid-1"))

	_, err = store.Get(ctx, "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDestroyMissing(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Destroy(context.Background(), "never-existed"))
}
