package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nberthel/formadmin/internal/client/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "formadmin_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_SaveGetClearTokens(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// empty store reports ErrTokensNotFound
	_, err := store.GetTokens(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)

	pair := &storage.TokenPair{Access: "T1", Refresh: "T2"}
	require.NoError(t, store.SaveTokens(ctx, pair))

	got, err := store.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Access)
	assert.Equal(t, "T2", got.Refresh)

	require.NoError(t, store.ClearTokens(ctx))

	_, err = store.GetTokens(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

func TestStorage_SaveTokens_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{Access: "old-a", Refresh: "old-r"}))
	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{Access: "new-a", Refresh: "new-r"}))

	got, err := store.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-a", got.Access)
	assert.Equal(t, "new-r", got.Refresh)
}

func TestStorage_SaveTokens_Nil(t *testing.T) {
	store := newTestStorage(t)

	err := store.SaveTokens(context.Background(), nil)
	require.Error(t, err)
}

func TestStorage_ClearTokens_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// clearing an empty store is not an error, twice in a row either
	require.NoError(t, store.ClearTokens(ctx))
	require.NoError(t, store.ClearTokens(ctx))
}

func TestStorage_Theme(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetTheme(ctx)
	assert.ErrorIs(t, err, storage.ErrPrefNotFound)

	require.NoError(t, store.SaveTheme(ctx, "dark"))

	theme, err := store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	require.NoError(t, store.SaveTheme(ctx, "light"))

	theme, err = store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}
