package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AbsentDocumentIsNotAnError(t *testing.T) {
	store := NewMemoryStore()

	data, version, err := store.Load(context.Background(), "missing.json")

	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, int64(0), version)
}

func TestMemoryStore_CreateThenLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "waitlist.json", []byte(`[]`), 0))

	data, version, err := store.Load(ctx, "waitlist.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	assert.Equal(t, int64(1), version)
}

func TestMemoryStore_StaleSaveConflicts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "waitlist.json", []byte(`["a"]`), 0))

	// Writer A and writer B both loaded version 1. A wins.
	require.NoError(t, store.Save(ctx, "waitlist.json", []byte(`["a","b"]`), 1))

	err := store.Save(ctx, "waitlist.json", []byte(`["a","c"]`), 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// The losing writer reloads and retries against the new version.
	data, version, loadErr := store.Load(ctx, "waitlist.json")
	require.NoError(t, loadErr)
	assert.Equal(t, int64(2), version)
	assert.Equal(t, []byte(`["a","b"]`), data)

	require.NoError(t, store.Save(ctx, "waitlist.json", []byte(`["a","b","c"]`), 2))
}

func TestMemoryStore_CreateRaceConflicts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "waitlist.json", []byte(`["a"]`), 0))

	err := store.Save(ctx, "waitlist.json", []byte(`["b"]`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestMemoryStore_VersionIncrementsMonotonically(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var version int64
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, "analytics.json", []byte(`[]`), version))
		version++
	}

	_, got, err := store.Load(ctx, "analytics.json")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)
}
