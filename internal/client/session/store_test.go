package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/etfdesk/internal/client/repositories/metadata"
)

func setupStore(t *testing.T) *MetadataTokenStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	return NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
}

func TestMetadataTokenStore_AbsentIsEmptyString(t *testing.T) {
	store := setupStore(t)

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestMetadataTokenStore_SetThenGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc.def.ghi"))

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestMetadataTokenStore_SetOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "old"))
	require.NoError(t, store.Set(ctx, "new"))

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestMetadataTokenStore_Clear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc"))
	require.NoError(t, store.Clear(ctx))

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestMetadataTokenStore_ClearWhenEmptyIsNoError(t *testing.T) {
	store := setupStore(t)

	assert.NoError(t, store.Clear(context.Background()))
}
