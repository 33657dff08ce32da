// Package redis holds the Redis-backed credit limit cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "user-service-credit-cache"
)

// Config selects the Redis instance that backs the credit cache.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens the credit cache connection and pings it. Timeout bounds the
// dial and every read and write, so a slow cache cannot hold up a
// registration for longer than one bureau fallback.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("credit cache: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
