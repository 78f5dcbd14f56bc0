// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"recipebox/internal/persist"
)

// DefaultKeyPrefix namespaces recipebox keys inside a shared Valkey.
const DefaultKeyPrefix = "recipebox:"

// KV stores values in Valkey as plain strings without expiry.
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV creates a backend on client. An empty prefix uses DefaultKeyPrefix.
func NewKV(client *redis.Client, prefix string) *KV {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KV{client: client, prefix: prefix}
}

// Key returns the Valkey key that holds key.
func (kv *KV) Key(key string) string {
	return kv.prefix + key
}

// Get returns the stored value or persist.ErrNotFound.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := kv.client.Get(ctx, kv.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return val, nil
}

// Put overwrites the value for key.
func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	if err := kv.client.Set(ctx, kv.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}
