package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"lejog-map/internal/domain"
	"lejog-map/pkg/redis"
)

// CacheService is a cache-aside layer for the normalized activity list. Every
// failure degrades to a cache miss; the aggregation pipeline is always the
// source of truth.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetMappedActivities returns the cached list for a date window, or
// (nil, false) on miss, error or corruption.
func (c *CacheService) GetMappedActivities(ctx context.Context, start, end string) ([]domain.MappedActivity, bool) {
	key := fmt.Sprintf(redis.KeyMappedActivities, start, end)

	cached, err := c.redis.Get(ctx, key)
	if err != nil {
		if !redis.IsNil(err) {
			c.logger.Warn("Activities cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var activities []domain.MappedActivity
	if err := json.Unmarshal([]byte(cached), &activities); err != nil {
		c.logger.Warn("Activities cache corrupted, dropping entry", zap.Error(err))
		if err := c.redis.Delete(ctx, key); err != nil {
			c.logger.Warn("Failed to drop corrupted cache entry", zap.Error(err))
		}
		return nil, false
	}

	c.logger.Debug("Activities cache hit", zap.String("start", start), zap.String("end", end))
	return activities, true
}

// SetMappedActivities caches the list for a date window. Errors are logged
// and swallowed.
func (c *CacheService) SetMappedActivities(ctx context.Context, start, end string, activities []domain.MappedActivity) {
	key := fmt.Sprintf(redis.KeyMappedActivities, start, end)

	data, err := json.Marshal(activities)
	if err != nil {
		c.logger.Warn("Failed to marshal activities for cache", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, key, data, redis.TTLMappedActivities); err != nil {
		c.logger.Warn("Activities cache write failed", zap.Error(err))
	}
}
