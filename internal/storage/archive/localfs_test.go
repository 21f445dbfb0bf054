package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_ReadWrite(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("20240603 00:00,500000,510000,495000,505000,1200\n")

	require.NoError(t, store.Write(ctx, "mu.csv", data))

	got, err := store.Read(ctx, "mu.csv")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalFS_ReadMissing(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "sndk.zip")
	assert.Error(t, err)
}

func TestLocalFS_WriteCreatesDirectories(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	nested := filepath.Join("equity", "daily", "rklb.zip")
	require.NoError(t, store.Write(ctx, nested, []byte("payload")))

	exists, err := store.Exists(ctx, nested)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalFS_Exists(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	exists, err := store.Exists(ctx, "cde.zip")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Write(ctx, "cde.zip", []byte("x")))

	exists, err = store.Exists(ctx, "cde.zip")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalFS_List(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"mu.zip", "sndk.zip", "spy.zip"} {
		require.NoError(t, store.Write(ctx, name, []byte("x")))
	}

	paths, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, paths, 3)
	assert.Contains(t, paths, "mu.zip")
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)

	paths, err := store.List(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
