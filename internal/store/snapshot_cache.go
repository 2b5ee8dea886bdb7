package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

const snapshotCacheKey = "dashboard:snapshot:latest"

// SnapshotCache keeps the latest snapshot in Redis so a restart does
// not hit Postgres on the first page load.
type SnapshotCache interface {
	Get(ctx context.Context) (domain.Snapshot, bool)
	Set(ctx context.Context, snapshot domain.Snapshot)
	Invalidate(ctx context.Context)
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache instantiates the cache. A nil client disables it.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) SnapshotCache {
	return &snapshotCache{client: client, ttl: ttl}
}

func (c *snapshotCache) Get(ctx context.Context) (domain.Snapshot, bool) {
	if c.client == nil {
		return domain.Snapshot{}, false
	}
	payload, err := c.client.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("snapshot cache read failed", zap.Error(err))
		}
		return domain.Snapshot{}, false
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, false
	}
	return snapshot, true
}

func (c *snapshotCache) Set(ctx context.Context, snapshot domain.Snapshot) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, snapshotCacheKey, payload, c.ttl).Err()
}

func (c *snapshotCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, snapshotCacheKey).Err()
}
