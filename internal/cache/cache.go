package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListPrefix = "cache:products:"
	defaultTTL        = 60 * time.Second
)

// Cache is a best-effort read cache over redis. Every failure degrades to
// a miss; callers must always be able to serve from the database.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: defaultTTL}
}

// GetProductList returns the cached payload for a listing key, or false on miss.
func (c *Cache) GetProductList(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, productListPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromCtx(ctx).Warn("product cache read failed", zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.FromCtx(ctx).Warn("product cache decode failed", zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) SetProductList(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, productListPrefix+key, raw, c.ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("product cache write failed", zap.Error(err))
	}
}

// InvalidateProducts drops every cached listing. Called after catalog writes.
func (c *Cache) InvalidateProducts(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, productListPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.FromCtx(ctx).Warn("product cache invalidation failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		logger.FromCtx(ctx).Warn("product cache scan failed", zap.Error(err))
	}
}
