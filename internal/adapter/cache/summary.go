package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lending-ledger-backend/internal/domain/lending"

	"github.com/redis/go-redis/v9"
)

const summaryKey = "lending:summary:v1"

// SummaryCache keeps the dashboard aggregate in Redis under a single key.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context) (*lending.Summary, error) {
	raw, err := c.rdb.Get(ctx, summaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s lending.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = c.rdb.Del(ctx, summaryKey).Err()
		return nil, nil
	}
	return &s, nil
}

func (c *SummaryCache) Set(ctx context.Context, s *lending.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, summaryKey, b, c.ttl).Err()
}

func (c *SummaryCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, summaryKey).Err()
}
