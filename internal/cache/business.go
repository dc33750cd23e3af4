package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

const businessKeyPrefix = "business:"

// BusinessCache keeps public business profiles in Redis. It is advisory: a
// miss or a Redis failure always falls through to the store. A nil
// BusinessCache never hits.
type BusinessCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewBusinessCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *BusinessCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &BusinessCache{client: client, ttl: ttl, log: log}
}

func businessKey(id string) string {
	return businessKeyPrefix + id
}

func (c *BusinessCache) Get(ctx context.Context, id string) (*models.Business, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, businessKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("business cache get failed", zap.String("business_id", id), zap.Error(err))
		return nil, false
	}

	var b models.Business
	if err := json.Unmarshal(raw, &b); err != nil {
		c.log.Warn("business cache entry corrupt", zap.String("business_id", id), zap.Error(err))
		return nil, false
	}
	return &b, true
}

func (c *BusinessCache) Set(ctx context.Context, b *models.Business) {
	if c == nil || b == nil {
		return
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, businessKey(b.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("business cache set failed", zap.String("business_id", b.ID), zap.Error(err))
	}
}

// Invalidate drops the cached profile; owners call it on every write.
func (c *BusinessCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, businessKey(id)).Err(); err != nil {
		c.log.Warn("business cache invalidate failed", zap.String("business_id", id), zap.Error(err))
	}
}
