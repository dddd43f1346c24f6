package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salonops/salon-manager/internal/config"
)

const (
	inventoryReportKey = "analytics:inventory"
	reportTTL          = 5 * time.Minute
)

// InventoryCache holds the last computed inventory report. It is a pure
// read-through cache: every stock write deletes the key, so a stale
// snapshot can only live until the next adjustment or the TTL,
// whichever comes first.
type InventoryCache struct {
	client *redis.Client
}

// NewInventoryCache returns nil when Redis is not configured; all
// methods are nil-safe so callers need no guard.
func NewInventoryCache(cfg *config.Config) *InventoryCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	return &InventoryCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

func (c *InventoryCache) GetReport(ctx context.Context, out any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, inventoryReportKey).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (c *InventoryCache) SetReport(ctx context.Context, report any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}

	c.client.Set(ctx, inventoryReportKey, raw, reportTTL)
}

// Invalidate is the single invalidation event: called after every
// ledger write.
func (c *InventoryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	c.client.Del(ctx, inventoryReportKey)
}
