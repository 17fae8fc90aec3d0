package config

// This file defines the Redis client constructor.  Redis keeps the latest
// occupancy snapshot for the gate display.  If the server cannot be
// reached at startup the caller falls back to an in-memory store.

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the snapshot settings
// and pings it with a short timeout.  The client is closed and an error
// returned when the ping fails.
func NewRedisClient(ctx context.Context, cfg SnapshotConfig) (*redis.Client, error) {
	var tlsConf *tls.Config
	if cfg.RedisTLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPass,
		DB:        cfg.RedisDB,
		TLSConfig: tlsConf,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
