package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "dashboard:stats:"

// StatsCache stores per-user todo counters for a short TTL.
// A nil *StatsCache is valid and caches nothing.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache returns nil when rdb is nil or ttl is not positive.
func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(userID string) string {
	return statsKeyPrefix + userID
}

// Get reports a miss as (nil, nil).
func (c *StatsCache) Get(ctx context.Context, userID string) (*model.TodoStats, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("StatsCache.Get: %w", err)
	}

	stats := &model.TodoStats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, fmt.Errorf("StatsCache.Get decode: %w", err)
	}
	return stats, nil
}

func (c *StatsCache) Set(ctx context.Context, userID string, stats *model.TodoStats) error {
	if c == nil || stats == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("StatsCache.Set encode: %w", err)
	}
	if err := c.rdb.Set(ctx, statsKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("StatsCache.Set: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, statsKey(userID)).Err(); err != nil {
		return fmt.Errorf("StatsCache.Invalidate: %w", err)
	}
	return nil
}
