package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

// setupBackend helps create a backend for testing.
// It returns the backend and the root path of the store.
func setupBackend(t *testing.T, opts ...func(*fs.Config)) (*fs.Backend, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "store")
	cfg := fs.Config{Path: root}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := fs.NewBackend(cfg)
	return b, root
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		b, root := setupBackend(t)

		if err := b.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, fs.DefaultSystemDir)); os.IsNotExist(err) {
			t.Errorf("expected system directory to be created under %s", root)
		}
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		b, _ := setupBackend(t, func(c *fs.Config) { c.MustExist = true })

		if err := b.Initialize(context.Background()); err == nil {
			t.Error("expected Initialize to fail when directory is missing and MustExist=true")
		}
	})

	t.Run("ReadOnly Does Not Create", func(t *testing.T) {
		b, root := setupBackend(t, func(c *fs.Config) { c.ReadOnly = true })
		if err := os.MkdirAll(root, 0755); err != nil {
			t.Fatal(err)
		}

		if err := b.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, fs.DefaultSystemDir)); !os.IsNotExist(err) {
			t.Error("read-only backend must not create the system directory")
		}
	})
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	b, root := setupBackend(t)
	if err := b.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := b.Get(ctx, "notes"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := b.Set(ctx, "notes", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := b.Get(ctx, "notes")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	path := filepath.Join(root, fs.DefaultSystemDir, "notes.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected value at %s: %v", path, err)
	}

	state := b.State().(fs.BackendState)
	if state.LastWrite == nil {
		t.Error("expected LastWrite to be recorded")
	}
}

func TestInvalidKeys(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", `a\b`, "a/b"} {
		if err := b.Set(ctx, key, "x"); err == nil {
			t.Errorf("Set(%q) should fail", key)
		}
		if _, _, err := b.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	writable, root := setupBackend(t)
	if err := writable.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if err := writable.Set(ctx, "notes", `[{"id":1,"content":"kept","fixed":false}]`); err != nil {
		t.Fatal(err)
	}

	ro := fs.NewBackend(fs.Config{Path: root, ReadOnly: true})
	store := core.NewStore(ro)

	notes := store.List(ctx)
	if len(notes) != 1 || notes[0].Content != "kept" {
		t.Fatalf("unexpected notes: %+v", notes)
	}

	if _, err := store.Create(ctx, "blocked"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	b, root := setupBackend(t, func(c *fs.Config) { c.Extension = "yaml" })
	if err := b.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	first := core.NewStore(b, core.WithCodec(core.YAMLCodec{}))
	a, err := first.Create(ctx, "buy milk")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.TogglePin(ctx, a.ID); err != nil {
		t.Fatal(err)
	}

	second := core.NewStore(fs.NewBackend(fs.Config{Path: root, Extension: ".yaml"}), core.WithCodec(core.YAMLCodec{}))
	got := second.List(ctx)
	if len(got) != 1 || got[0] != (core.Note{ID: a.ID, Content: "buy milk", Fixed: true}) {
		t.Fatalf("unexpected notes after reopen: %+v", got)
	}

	if _, err := os.Stat(filepath.Join(root, fs.DefaultSystemDir, "notes.yaml")); err != nil {
		t.Errorf("expected yaml file: %v", err)
	}
}
