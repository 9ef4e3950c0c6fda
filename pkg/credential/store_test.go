package credential

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	token, ok, err := s.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)

	require.NoError(t, s.Set(ctx, "first"))
	token, ok, err = s.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", token)

	// a new login overwrites the previous token
	require.NoError(t, s.Set(ctx, "second"))
	token, _, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	assert.ErrorIs(t, s.Set(ctx, ""), ErrEmptyToken)

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestBoltStore(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "nested", "creds.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.db")
	ctx := context.Background()

	s, err := OpenBoltStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "persisted"))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path, nil)
	require.NoError(t, err)
	defer s.Close()

	token, ok, err := s.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", token)
}
