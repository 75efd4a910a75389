package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/core"
)

func TestNew_Adapters(t *testing.T) {
	tests := []struct {
		name     string
		opts     []platform.Option
		wantFile string
		wantType string
	}{
		{name: "fs json", opts: nil, wantFile: ".jotter/notes.json", wantType: "fs"},
		{name: "fs yaml", opts: []platform.Option{platform.WithFormat("yaml")}, wantFile: ".jotter/notes.yaml", wantType: "fs"},
		{name: "fs custom key", opts: []platform.Option{platform.WithStorageKey("inbox")}, wantFile: ".jotter/inbox.json", wantType: "fs"},
		{name: "sqlite", opts: []platform.Option{platform.WithAdapter("sqlite")}, wantFile: ".jotter/jotter.db", wantType: "sqlite"},
		{name: "memory", opts: []platform.Option{platform.WithAdapter("memory")}, wantType: "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()

			store, err := platform.New(dir, tt.opts...)
			require.NoError(t, err)
			defer store.Close()

			n, err := store.Create(ctx, "hello")
			require.NoError(t, err)
			assert.Equal(t, []core.Note{n}, store.List(ctx))

			if tt.wantFile != "" {
				_, err := os.Stat(filepath.Join(dir, tt.wantFile))
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantType, store.State().(core.StoreState).BackendType)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.New(t.TempDir(), platform.WithAdapter("s3"))
		assert.Error(t, err)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := platform.New(t.TempDir(), platform.WithFormat("xml"))
		assert.Error(t, err)
	})

	t.Run("MustExist", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")
		_, err := platform.New(missing, platform.WithMustExist(true))
		assert.Error(t, err)

		_, err = platform.New(missing, platform.WithAdapter("sqlite"), platform.WithMustExist(true))
		assert.Error(t, err)
	})
}

func TestNew_ReadOnly(t *testing.T) {
	tests := []struct {
		adapter string
		seeded  int
	}{
		{adapter: "fs", seeded: 1},
		{adapter: "sqlite", seeded: 1},
		{adapter: "memory", seeded: 0},
	}

	for _, tt := range tests {
		t.Run(tt.adapter, func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()

			writable, err := platform.New(dir, platform.WithAdapter(tt.adapter))
			require.NoError(t, err)
			_, err = writable.Create(ctx, "existing")
			require.NoError(t, err)
			require.NoError(t, writable.Close())

			ro, err := platform.New(dir, platform.WithAdapter(tt.adapter), platform.WithReadOnly(true))
			require.NoError(t, err)
			defer ro.Close()
			assert.Len(t, ro.List(ctx), tt.seeded)

			_, err = ro.Create(ctx, "blocked")
			assert.ErrorIs(t, err, core.ErrReadOnly)
			assert.Len(t, ro.List(ctx), tt.seeded)
			assert.Equal(t, tt.adapter, ro.State().(core.StoreState).BackendType)
		})
	}

	t.Run("sqlite without database", func(t *testing.T) {
		dir := t.TempDir()
		_, err := platform.New(dir, platform.WithAdapter("sqlite"), platform.WithReadOnly(true))
		assert.Error(t, err)

		_, statErr := os.Stat(filepath.Join(dir, ".jotter"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("injected backend", func(t *testing.T) {
		backend := memory.NewBackend()
		ro, err := platform.New("", platform.WithBackend(backend), platform.WithReadOnly(true))
		require.NoError(t, err)

		_, err = ro.Create(context.Background(), "blocked")
		assert.ErrorIs(t, err, core.ErrReadOnly)

		_, ok, err := backend.Get(context.Background(), core.DefaultStorageKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNew_InjectedBackend(t *testing.T) {
	backend := memory.NewBackend()
	store, err := platform.New("ignored",
		platform.WithBackend(backend),
		platform.WithIDGenerator(core.SequentialID(7)),
	)
	require.NoError(t, err)

	n, err := store.Create(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.ID)

	raw, ok, err := backend.Get(context.Background(), core.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":7,"content":"x","fixed":false}]`, raw)
}

func TestInit_FSBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")

	backend, err := platform.Init(dir, platform.WithSystemDir(".custom"))
	require.NoError(t, err)

	fsBackend, ok := backend.(*fs.Backend)
	require.True(t, ok)
	assert.Equal(t, dir, fsBackend.Path)

	info, err := os.Stat(filepath.Join(dir, ".custom"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
