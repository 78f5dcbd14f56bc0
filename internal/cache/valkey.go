// Package cache provides Valkey (Redis-compatible) client initialization
// and a persist.Backend that keeps each value under a prefixed string key.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a
// ping, retrying with exponential backoff for up to maxWait.
func ConnectValkey(ctx context.Context, host, port, password string, maxWait time.Duration) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	err := backoff.RetryNotify(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		slog.Warn("valkey not ready, retrying", "addr", addr, "error", err, "retry_in", next.String())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
