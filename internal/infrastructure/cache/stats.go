package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"creditpath-backend/internal/domain/loan"

	"github.com/redis/go-redis/v9"
)

const statsKey = "creditpath:dashboard:stats"

// StatsCache holds the dashboard aggregate for a short TTL.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *StatsCache) Get(ctx context.Context) (*loan.Stats, bool, error) {
	raw, err := c.rdb.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s loan.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		// unreadable entry; drop it and treat as a miss
		_ = c.rdb.Del(ctx, statsKey).Err()
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *StatsCache) Set(ctx context.Context, s *loan.Stats) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, payload, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, statsKey).Err()
}
