package session

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/storage/memstore"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = backend
	switch backend {
	case config.BackendJSON:
		cfg.Path = filepath.Join(t.TempDir(), "data")
	case config.BackendSQLite:
		cfg.Path = filepath.Join(t.TempDir(), "tada.db")
	}
	require.NoError(t, cfg.Finalize())
	return cfg
}

func TestOpen_EmptyIsReadyAndClean(t *testing.T) {
	s, err := Open(context.Background(), testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, Ready, s.Phase())
	assert.Zero(t, s.Store.Len())
	assert.False(t, s.Store.Dirty())
}

func TestPersistsAcrossSessions(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			s1, err := Open(ctx, cfg, nil)
			require.NoError(t, err)
			s1.Store.Add("buy milk")
			s1.Store.Add("walk dog")
			s1.Store.MarkDone("buy milk")
			assert.True(t, s1.Store.Dirty())
			require.NoError(t, s1.Save(ctx))
			assert.False(t, s1.Store.Dirty())
			require.NoError(t, s1.Close())
			assert.Equal(t, Closed, s1.Phase())

			s2, err := Open(ctx, cfg, nil)
			require.NoError(t, err)
			defer s2.Close()
			assert.Equal(t, []model.Item{{Value: "buy milk", Done: true}, {Value: "walk dog"}}, s2.Store.Items())
			assert.False(t, s2.Store.Dirty())
		})
	}
}

func TestOpen_CorruptDataStartsEmpty(t *testing.T) {
	cfg := testConfig(t, config.BackendJSON)
	require.NoError(t, os.MkdirAll(cfg.Path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Path, "items.json"), []byte("}{"), 0o644))

	s, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Zero(t, s.Store.Len())
	assert.Equal(t, Ready, s.Phase())
}

func TestRoundTrip_WhitespaceValuesKeptExact(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendJSON)
	require.NoError(t, os.MkdirAll(cfg.Path, 0o755))
	stored := `[{"value":" a","done":false},{"value":"a","done":true},{"value":"   ","done":false}]`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Path, "items.json"), []byte(stored), 0o644))

	s1, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	want := []model.Item{{Value: " a"}, {Value: "a", Done: true}, {Value: "   "}}
	assert.Equal(t, want, s1.Store.Items())
	assert.False(t, s1.Store.Dirty())

	require.True(t, s1.Store.Add("a "))
	require.NoError(t, s1.Save(ctx))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, append(want, model.Item{Value: "a "}), s2.Store.Items())
}

func TestOpen_DuplicatesInStorageAreUnsaved(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	stored := []byte(`[{"value":"x","done":true},{"value":"x","done":false},{"value":"y","done":false}]`)
	require.NoError(t, kv.Set(ctx, "items", stored))

	s, err := New(ctx, kv, testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []model.Item{{Value: "x", Done: true}, {Value: "y"}}, s.Store.Items())
	assert.Equal(t, stored, s.Store.Snapshot())
	assert.True(t, s.Store.Dirty(), "deduplicated list differs from what storage holds")

	require.NoError(t, s.Save(ctx))
	assert.False(t, s.Store.Dirty())
	got, err := kv.Get(ctx, "items")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"value":"x","done":true},{"value":"y","done":false}]`, string(got))
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "redis"
	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestAutosave_StopsOnClose(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	cfg := testConfig(t, config.BackendMemory)
	cfg.AutosaveInterval = 2 * time.Millisecond

	s, err := New(ctx, kv, cfg, nil)
	require.NoError(t, err)
	s.Store.Add("a")

	var saves atomic.Int32
	s.StartAutosave(ctx, func(err error) {
		assert.NoError(t, err)
		saves.Add(1)
	})
	s.StartAutosave(ctx, nil)

	require.Eventually(t, func() bool { return saves.Load() > 0 }, time.Second, time.Millisecond)
	assert.False(t, s.Store.Dirty())

	require.NoError(t, s.Close())
	after := saves.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, saves.Load(), "no saves after Close")

	stored, err := kv.Get(ctx, "items")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"value":"a","done":false}]`, string(stored))
}

func TestClose_SaveOnExit(t *testing.T) {
	ctx := context.Background()
	for _, saveOnExit := range []bool{true, false} {
		kv := memstore.New()
		cfg := testConfig(t, config.BackendMemory)
		cfg.SaveOnExit = saveOnExit

		s, err := New(ctx, kv, cfg, nil)
		require.NoError(t, err)
		s.Store.Add("unsaved")
		require.NoError(t, s.Close())
		require.NoError(t, s.Close(), "second Close is a no-op")

		_, err = kv.Get(ctx, "items")
		if saveOnExit {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
