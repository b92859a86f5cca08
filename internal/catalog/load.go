package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

// reloadDebounce coalesces the burst of write events editors and atomic
// renames produce into a single reload.
const reloadDebounce = 250 * time.Millisecond

// Load creates a catalog from a JSON file containing an array of book records.
func Load(path string) (*Catalog, error) {
	books, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return New(books), nil
}

// Reload re-reads the catalog file and atomically swaps in the new snapshot.
// On read or parse failure the current snapshot stays in place.
func (c *Catalog) Reload(path string) error {
	books, err := readCatalogFile(path)
	if err != nil {
		return err
	}
	c.replace(books)
	return nil
}

// Watch reloads the catalog whenever the file changes, until the context is
// canceled. Runs in its own goroutine; the caller owns the context.
func (c *Catalog) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}

	// Watch the directory, not the file: editors and atomic writes replace
	// the inode, which would silently detach a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch catalog directory: %w", err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		reload := func() {
			if err := c.Reload(path); err != nil {
				if logger != nil {
					logger.Warn("Catalog reload failed, keeping previous snapshot", "path", path, "error", err)
				}
				return
			}
			if logger != nil {
				logger.Info("Catalog reloaded", "path", path, "books", c.Len())
			}
		}

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Warn("Catalog watcher error", "error", err)
				}
			}
		}
	}()

	return nil
}

// readCatalogFile parses a JSON array of book records.
func readCatalogFile(path string) ([]domain.BookRecord, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Catalog path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var books []domain.BookRecord
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	if len(books) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no books", path)
	}

	return books, nil
}
