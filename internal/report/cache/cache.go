// Package cache keeps the dashboard tiles out of the hot query path.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	"github.com/amancodes12/pharmaease/internal/report/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const statsKey = "pharmaease:dashboard:stats"

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock
}

// New returns a redis-backed cache when an address is configured, and an
// in-process cache otherwise so single-node deployments need no redis.
func New(p Params) domain.StatsCache {
	if p.Config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     p.Config.RedisAddr,
			Password: p.Config.RedisPassword,
		})
		p.Log.Info("dashboard cache using redis", zap.String("addr", p.Config.RedisAddr))
		return &redisCache{client: client, ttl: p.Config.StatsCacheTTL}
	}
	return &memoryCache{ttl: p.Config.StatsCacheTTL, clock: p.Clock}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisCache) Get(ctx context.Context) (domain.DashboardStats, bool, error) {
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DashboardStats{}, false, nil
		}
		return domain.DashboardStats{}, false, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return domain.DashboardStats{}, false, err
	}
	return stats, true, nil
}

func (c *redisCache) Set(ctx context.Context, stats domain.DashboardStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, payload, c.ttl).Err()
}

type memoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clock.Clock
	stats   domain.DashboardStats
	expires time.Time
}

func (c *memoryCache) Get(_ context.Context) (domain.DashboardStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expires.IsZero() || c.clock.Now().After(c.expires) {
		return domain.DashboardStats{}, false, nil
	}
	return c.stats, true, nil
}

func (c *memoryCache) Set(_ context.Context, stats domain.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = stats
	c.expires = c.clock.Now().Add(c.ttl)
	return nil
}
