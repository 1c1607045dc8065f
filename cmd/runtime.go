package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/store"
)

// keepSnapshots is how many progress snapshots are retained.
const keepSnapshots = 20

// runtime is everything a command needs once config is loaded.
type runtime struct {
	store   *store.Store
	repo    *progress.Repository
	catalog *catalog.Catalog
}

// openRuntime opens the configured database and loads the word list.
func openRuntime() (*runtime, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.ResolveDSN()
	if err != nil {
		return nil, errors.Wrap(err, "resolve database")
	}
	st, err := store.Open(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	logger.Debug("store opened", "driver", cfg.DB.Driver)

	return &runtime{
		store:   st,
		repo:    progress.NewRepository(st.KV(), cfg.Store.Key, cfg.Codec(), logger),
		catalog: cat,
	}, nil
}

func (rt *runtime) Close() error {
	return rt.store.Close()
}

// loadCatalog reads catalog.path, or returns the built-in list.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	res, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if res.Skipped > 0 {
		logger.Warn("skipped catalog rows without an id", "path", cfg.Catalog.Path, "rows", res.Skipped)
	}
	return res.Catalog, nil
}

// snapshot stores a copy of ps and prunes old copies.
func (rt *runtime) snapshot(ctx context.Context, ps *progress.Store, reason string) error {
	data, err := cfg.Codec().Encode(ps)
	if err != nil {
		return err
	}
	snaps := rt.store.SnapshotRepo()
	if err := snaps.Save(ctx, &store.Snapshot{
		Timestamp: time.Now(),
		Reason:    reason,
		Data:      data,
	}); err != nil {
		return err
	}
	return snaps.Prune(ctx, keepSnapshots)
}
