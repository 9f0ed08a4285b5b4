package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteBackend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doit.db")
	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, path
}

func TestNewSQLiteBackend_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "doit.db")

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer b.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestSQLiteBackend_GetMissing(t *testing.T) {
	b, _ := newTestSQLite(t)

	v, ok, err := b.Get(context.Background(), "todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteBackend_SetGetOverwrite(t *testing.T) {
	b, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "todos", `[]`))
	require.NoError(t, b.Set(ctx, "todos", `[{"id":"a","text":"x","completed":false}]`))

	v, ok, err := b.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a","text":"x","completed":false}]`, v)
}

func TestSQLiteBackend_Remove(t *testing.T) {
	b, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "onboarded", "true"))
	require.NoError(t, b.Remove(ctx, "onboarded"))
	require.NoError(t, b.Remove(ctx, "onboarded"), "removing a missing key must succeed")

	_, ok, err := b.Get(ctx, "onboarded")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	b, path := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "todos", "[]"))
	require.NoError(t, b.Close())

	reopened, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSQLiteBackend_InMemory(t *testing.T) {
	b, err := NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", "v"))
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteBackend_ClosedErrors(t *testing.T) {
	b, _ := newTestSQLite(t)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	ctx := context.Background()

	_, _, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Set(ctx, "k", "v"), ErrClosed)
	assert.ErrorIs(t, b.Remove(ctx, "k"), ErrClosed)
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", "v"))
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, b.Remove(ctx, "k"))
	_, ok, _ = b.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.Set(ctx, "k", "v"), ErrClosed)
}

func TestOpen(t *testing.T) {
	b, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = Open("sqlite", filepath.Join(t.TempDir(), "doit.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	b.Close()

	_, err = Open("bolt", "")
	assert.ErrorContains(t, err, "unknown storage driver")
}
