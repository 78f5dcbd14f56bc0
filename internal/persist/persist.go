// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist reads and writes single named values against a durable
// key-value backend. Concrete backends live next to the client they wrap
// (files and memory here, SQL in store, Valkey in cache, S3 in storage);
// they all satisfy Backend.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by Backend.Get when no value is stored under a key.
var ErrNotFound = errors.New("persist: key not found")

// Backend stores opaque byte values under string keys. Put overwrites.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Load decodes the JSON value stored under key. It reports false when the
// key is absent, the backend fails, the value does not decode into T, or
// check rejects it. check may be nil.
func Load[T any](ctx context.Context, b Backend, key string, check func(T) error) (T, bool) {
	var zero T

	raw, err := b.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("persisted value absent", "key", key)
		return zero, false
	}
	if err != nil {
		slog.Warn("persisted value unreadable", "key", key, "error", err)
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("persisted value malformed", "key", key, "error", err)
		return zero, false
	}
	if check != nil {
		if err := check(v); err != nil {
			slog.Warn("persisted value rejected", "key", key, "error", err)
			return zero, false
		}
	}
	return v, true
}

// Save encodes v as JSON and overwrites the value stored under key.
// Failures are logged as warnings and returned so the caller can record
// them; they are never fatal.
func Save[T any](ctx context.Context, b Backend, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		err = fmt.Errorf("encode %s: %w", key, err)
		slog.Warn("persist save failed", "key", key, "error", err)
		return err
	}
	if err := b.Put(ctx, key, raw); err != nil {
		err = fmt.Errorf("put %s: %w", key, err)
		slog.Warn("persist save failed", "key", key, "error", err)
		return err
	}
	slog.Debug("persisted value saved", "key", key, "bytes", len(raw))
	return nil
}
