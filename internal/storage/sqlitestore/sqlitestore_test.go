package sqlitestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/storage"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.db")
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		require.NoError(t, s.Close())
	}
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "tada.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "items")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "items", []byte(`[{"value":"a","done":true}]`)))
	require.NoError(t, s.Set(ctx, "items", []byte(`[]`)))

	got, err := s.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tada.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "items", []byte(`["x"]`)))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, string(got))
}

func TestSet_RejectsBadKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tada.db"))
	require.NoError(t, err)
	defer s.Close()
	assert.Error(t, s.Set(context.Background(), "", []byte("x")))
}

func TestGet_RejectsBadKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tada.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "a/b")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
