package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps the snapshot as JSON under one key.  The TTL
// clears a stale snapshot left behind by a desk that was shut down.
type RedisSnapshotStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisSnapshotStore returns a store writing to key with the given TTL.
func NewRedisSnapshotStore(rdb *redis.Client, key string, ttl time.Duration) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSnapshotStore{rdb: rdb, key: key, ttl: ttl}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.rdb.SetEx(ctx, s.key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSnapshotStore) Latest(ctx context.Context) (Snapshot, error) {
	bs, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
