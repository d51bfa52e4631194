package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/config"
)

const pingTimeout = 5 * time.Second

// Connect dials Redis with the settings from the environment config and
// verifies connectivity with a ping. The catalog cache is the only consumer,
// and the cache is optional, so callers treat a failure here as "run without
// caching" rather than fatal.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
