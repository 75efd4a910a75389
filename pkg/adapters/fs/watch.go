package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watch reports changes to the file holding key, including writes made by other processes.
//
// The directory is watched rather than the file, because atomic writes replace
// the file (and its inode) on every save. Signals are coalesced: a slow reader
// sees at least one signal after the last change.
func (b *Backend) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	path, err := b.keyPath(key)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	if !b.config.ReadOnly {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	b.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer b.setWatcherActive(false)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("watcher events channel closed")
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if b.config.Logger != nil {
					b.config.Logger.Debug("change detected", "key", key, "op", event.Op.String())
				}
				select {
				case out <- struct{}{}:
				default:
				}

			case wErr, ok := <-watcher.Errors:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("watcher errors channel closed")
				}
				b.handleWatcherError(wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		b.handleWatcherError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return out, nil
}

// handleWatcherError processes errors from the fsnotify watcher.
func (b *Backend) handleWatcherError(err error) {
	if b.config.Logger != nil {
		b.config.Logger.Error("fsnotify error", "error", err)
	}
	if b.config.ErrorHandler != nil {
		b.config.ErrorHandler(err)
	}
}
