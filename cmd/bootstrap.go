package cmd

import (
	"context"
	"fmt"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/config"
	"bookmark-manager/core/database"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/storage"
	"bookmark-manager/core/store"
	"bookmark-manager/core/store/gormstore"
	"bookmark-manager/core/store/memstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// components holds everything the commands wire together.
type components struct {
	db         *gorm.DB
	storage    storage.Client
	store      store.Store
	persister  cache.Persister
	snapshots  *cache.Service
	roots      reconcile.RootMap
	reconciler *reconcile.Reconciler
}

// needsDatabase reports whether any configured component uses the database.
func needsDatabase(cfg *config.Config) bool {
	return cfg.Store.Driver == store.DriverDatabase || cfg.Snapshot.Backend == cache.BackendDatabase
}

// bootstrap connects and migrates the configured backends.
func bootstrap(ctx context.Context, cfg *config.Config, l *zap.Logger) (*components, error) {
	c := &components{}

	if needsDatabase(cfg) {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
		l.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("name", cfg.Database.Name))
	}

	if cfg.Snapshot.Backend == cache.BackendObject {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		c.storage = client
	}

	switch cfg.Store.Driver {
	case store.DriverDatabase:
		s := gormstore.New(c.db, l, cfg.Store)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		c.store = s
	default:
		c.store = memstore.New(cfg.Store.PrimaryTitle, cfg.Store.SecondaryTitle)
	}

	switch cfg.Snapshot.Backend {
	case cache.BackendDatabase:
		p := cache.NewDBPersister(c.db, cfg.Snapshot.Key)
		if err := p.Migrate(ctx); err != nil {
			return nil, err
		}
		c.persister = p
	case cache.BackendObject:
		c.persister = cache.NewObjectPersister(c.storage, cfg.Storage.Bucket, cfg.Snapshot.ObjectName)
	}

	c.snapshots = cache.NewService(c.store, c.persister, l)

	primary, secondary := c.store.Roots()
	c.roots = reconcile.NewRootMap(cfg.Import.PrimarySentinel, primary, cfg.Import.SecondarySentinel, secondary)
	c.reconciler = reconcile.New(c.store, c.roots, c.snapshots, l)

	l.Debug("Components ready",
		zap.String("store", cfg.Store.Driver),
		zap.String("snapshot", cfg.Snapshot.Backend))

	return c, nil
}

// setup loads configuration, builds the logger and bootstraps components.
func setup(ctx context.Context) (*config.Config, *zap.Logger, *components, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := bootstrap(ctx, cfg, l)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, c, nil
}
