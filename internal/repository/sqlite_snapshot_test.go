package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebudget/internal/testutil"
)

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()

	blob := []byte(`{"project":{"name":"Villa"}}`)
	require.NoError(t, store.SaveSnapshot(ctx, "draft", blob, time.Now()))

	loaded, err := store.LoadSnapshot(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, blob, loaded)
}

func TestSnapshotStore_SaveOverwrites(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "draft", []byte("v1"), time.Now()))
	require.NoError(t, store.SaveSnapshot(ctx, "draft", []byte("v2"), time.Now()))

	loaded, err := store.LoadSnapshot(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), loaded)
}

func TestSnapshotStore_LoadMissingReturnsNil(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))

	loaded, err := store.LoadSnapshot(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotStore_Clear(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "draft", []byte("v1"), time.Now()))
	require.NoError(t, store.ClearSnapshot(ctx, "draft"))

	loaded, err := store.LoadSnapshot(ctx, "draft")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing a missing key is not an error.
	assert.NoError(t, store.ClearSnapshot(ctx, "draft"))
}
