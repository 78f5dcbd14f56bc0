// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend opens the persistence backend selected by configuration
// and the recipe catalog on top of it. The server and recipectl share it.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"recipebox/internal/cache"
	"recipebox/internal/catalog"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/models"
	"recipebox/internal/persist"
	"recipebox/internal/storage"
	"recipebox/internal/store"
)

// Closer releases the connections held by a backend.
type Closer func() error

func noopCloser() error { return nil }

// Open connects to the backend named by cfg.Backend. The returned Closer
// must be called on shutdown.
func Open(ctx context.Context, cfg *config.Config) (persist.Backend, Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return persist.NewMemory(), noopCloser, nil

	case config.BackendFile:
		f, err := persist.NewFile(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return f, noopCloser, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlBackend(db, database.SQLite)

	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.DSN(), cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return sqlBackend(db, database.Postgres)

	case config.BackendValkey:
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewKV(client, ""), client.Close, nil

	case config.BackendS3:
		c, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", c.Bucket())
		return c, noopCloser, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// sqlBackend migrates db and wraps it in a key-value store.
func sqlBackend(db *sql.DB, dialect database.Dialect) (persist.Backend, Closer, error) {
	if err := database.Migrate(db, dialect); err != nil {
		db.Close()
		return nil, nil, err
	}
	kv, err := store.NewKVStore(db, dialect)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return kv, db.Close, nil
}

// Seed returns the configured seed collection: SEED_FILE when set,
// otherwise the built-in sample recipes.
func Seed(cfg *config.Config) ([]models.Recipe, error) {
	if cfg.SeedFile == "" {
		return catalog.DefaultSeed(), nil
	}
	seed, err := catalog.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded seed file", "path", cfg.SeedFile, "recipes", len(seed))
	return seed, nil
}

// OpenCatalog opens the backend and loads the catalog from it.
func OpenCatalog(ctx context.Context, cfg *config.Config) (*catalog.Store, Closer, error) {
	seed, err := Seed(cfg)
	if err != nil {
		return nil, nil, err
	}
	b, closeFn, err := Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cat := catalog.Open(ctx, b, cfg.StoreKey, seed)
	slog.Info("catalog opened", "backend", cfg.Backend, "key", cfg.StoreKey, "recipes", cat.Len())
	return cat, closeFn, nil
}
