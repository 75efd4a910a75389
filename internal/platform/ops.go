package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/core"
)

// Init builds and initializes the storage backend selected by the options.
// The 'uri' argument is adapter-specific (a directory for 'fs' and 'sqlite', ignored by 'memory').
func Init(uri string, opts ...Option) (core.Backend, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initBackend(uri, o)
}

func initBackend(uri string, o *options) (core.Backend, error) {
	readOnly, _ := o.config["read_only"].(bool)

	// 1. Check for injected backend
	if o.backend != nil {
		if readOnly {
			return readOnlyBackend{o.backend}, nil
		}
		return o.backend, nil
	}

	// 2. Initialize based on Adapter
	var backend core.Backend
	var err error

	switch o.adapter {
	case "fs":
		backend, err = initFS(uri, o)
	case "sqlite":
		backend, err = initSQLite(uri, o)
	case "memory":
		backend = memory.NewBackend()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if in, ok := backend.(core.Initializer); ok {
		if err := in.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}

	// 4. Enforce read-only mode for every adapter
	if readOnly {
		if o.logger != nil {
			o.logger.Debug("running in READ-ONLY mode", "adapter", o.adapter)
		}
		return readOnlyBackend{backend}, nil
	}

	return backend, nil
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Backend, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if path == "" {
		path = "."
	}

	return fs.NewBackend(fs.Config{
		Path:         path,
		SystemDir:    systemDir,
		Extension:    "." + formatName(o),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), nil
}

// initSQLite opens {path}/{systemDir}/jotter.db, or path itself when it names a file.
func initSQLite(path string, o *options) (core.Backend, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	if path == "" {
		path = "."
	}

	var dbPath string
	info, statErr := os.Stat(path)
	switch {
	case statErr == nil && info.IsDir():
		dbPath = filepath.Join(path, systemDir, sqlite.DefaultFilename)
	case statErr == nil:
		dbPath = path
	case mustExist:
		return nil, fmt.Errorf("store path does not exist: %s", path)
	case filepath.Ext(path) == "":
		dbPath = filepath.Join(path, systemDir, sqlite.DefaultFilename)
	default:
		dbPath = path
	}

	if readOnly {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("read-only store has no database at %s: %w", dbPath, err)
		}
	} else if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if o.logger != nil {
		o.logger.Debug("opening sqlite backend", "path", dbPath)
	}
	return sqlite.Open(dbPath)
}

func formatName(o *options) string {
	format, _ := o.config["format"].(string)
	c, err := core.CodecByName(format)
	if err != nil {
		return "json"
	}
	return c.Name()
}
