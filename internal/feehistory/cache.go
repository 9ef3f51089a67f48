package feehistory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"earnapi/internal/yield"
)

// Source is where strategy views read fee series from.
type Source interface {
	Series(ctx context.Context) ([]yield.FeeSample, error)
}

// Cache keeps the trailing fee series warm in memory. A cron-driven Refresh
// repopulates it; readers fall through to the client while the cache is cold.
type Cache struct {
	Client *Client
	Logger *zap.Logger
	PoolID string
	Hours  int

	mu          sync.RWMutex
	series      []yield.FeeSample
	refreshedAt time.Time
}

func (c *Cache) Series(ctx context.Context) ([]yield.FeeSample, error) {
	c.mu.RLock()
	cached := c.series
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}
	return c.fetch(ctx)
}

func (c *Cache) Refresh(ctx context.Context) {
	if _, err := c.fetch(ctx); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("fee history refresh failed", zap.Error(err))
		}
	}
}

func (c *Cache) fetch(ctx context.Context) ([]yield.FeeSample, error) {
	hours := c.Hours
	if hours <= 0 {
		hours = 721
	}
	series, err := c.Client.GetHourlySeries(ctx, c.PoolID, hours)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.series = series
	c.refreshedAt = time.Now()
	c.mu.Unlock()
	return series, nil
}
