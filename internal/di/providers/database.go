package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-server/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-server/internal/config"
	"github.com/shelfmarkapp/shelfmark-server/internal/logger"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// CatalogHandle wraps the catalog with its watcher lifecycle.
type CatalogHandle struct {
	*catalog.Catalog
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideCatalog provides the book catalog. With no catalog file configured
// the built-in catalog is used; otherwise the file is loaded and, when
// enabled, watched for changes.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.Path == "" {
		c := catalog.New(catalog.DefaultBooks())
		log.Info("Using built-in catalog", "books", c.Len())
		return &CatalogHandle{Catalog: c}, nil
	}

	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog loaded",
		"path", cfg.Catalog.Path,
		"books", c.Len(),
	)

	handle := &CatalogHandle{Catalog: c}

	if cfg.Catalog.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := c.Watch(ctx, cfg.Catalog.Path, log.Logger); err != nil {
			cancel()
			return nil, err
		}
		handle.cancel = cancel
		log.Info("Catalog watcher started", "path", cfg.Catalog.Path)
	}

	return handle, nil
}
