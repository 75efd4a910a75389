package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

const (
	// DefaultSystemDir is the hidden directory holding stored values.
	DefaultSystemDir = ".jotter"

	// DefaultExtension is appended to the key to name its file.
	DefaultExtension = ".json"
)

// Backend implements core.Backend with one file per key.
//
// A key "notes" lives at {Path}/{SystemDir}/notes{Extension}. Writes replace
// the file atomically, so readers never see a partially written collection.
type Backend struct {
	Path   string
	config Config

	mu             sync.RWMutex
	activeWatchers int
	lastWrite      *time.Time
}

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path         string
	SystemDir    string // e.g. ".jotter"
	Extension    string // e.g. ".json" or ".yaml", should match the store codec
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Called with watcher failures that would otherwise only be logged.
}

// NewBackend creates a new filesystem-backed key-value store.
func NewBackend(config Config) *Backend {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	return &Backend{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the storage directory exists.
func (b *Backend) Initialize(ctx context.Context) error {
	if b.config.MustExist || b.config.ReadOnly {
		info, err := os.Stat(b.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", b.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", b.Path)
		}
	}

	if b.config.ReadOnly {
		return nil
	}

	if err := os.MkdirAll(b.dir(), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Get reads the file for key. A missing file means the key is absent.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := b.keyPath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if b.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if b.config.Logger != nil {
		b.config.Logger.Debug("writing value to disk", "key", key, "path", path, "bytes", len(value))
	}

	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	b.recordWrite()
	return nil
}

func (b *Backend) dir() string {
	return filepath.Join(b.Path, b.config.SystemDir)
}

// keyPath maps a key to its file, rejecting keys that would escape the system directory.
func (b *Backend) keyPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(b.dir(), key+b.config.Extension), nil
}

var _ core.Backend = (*Backend)(nil)
var _ core.Initializer = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
