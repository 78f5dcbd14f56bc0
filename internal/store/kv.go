// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements persist.Backend on top of a SQL database. Each
// key is one row of the kv_entries table created by the database
// migrations; PostgreSQL and SQLite share the schema and differ only in
// placeholder syntax.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/database"
	"recipebox/internal/persist"
)

// kvQueries holds the statements for one dialect.
type kvQueries struct {
	get string
	put string
}

var queries = map[database.Dialect]kvQueries{
	database.Postgres: {
		get: `SELECT value FROM kv_entries WHERE key = $1`,
		put: `
			INSERT INTO kv_entries (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	},
	database.SQLite: {
		get: `SELECT value FROM kv_entries WHERE key = ?`,
		put: `
			INSERT INTO kv_entries (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (key)
			DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
}

// KVStore manages key-value entries in the database.
type KVStore struct {
	db *sql.DB
	q  kvQueries
}

// NewKVStore returns a KVStore backed by db, which must already be migrated.
func NewKVStore(db *sql.DB, dialect database.Dialect) (*KVStore, error) {
	q, ok := queries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &KVStore{db: db, q: q}, nil
}

// Get returns the value stored under key, or persist.ErrNotFound.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var val string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get kv entry: %w", err)
	}
	return []byte(val), nil
}

// Put upserts the value for key. Creates the row if it doesn't exist.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.q.put, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put kv entry: %w", err)
	}
	return nil
}
