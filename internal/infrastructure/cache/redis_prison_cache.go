package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appprison "github.com/registers/backend/internal/application/prison"
	"github.com/registers/backend/internal/infrastructure/config"
)

const prisonKeyPrefix = "register:prison:"

// RedisPrisonCache is a Redis-backed read-through cache for prison
// responses. Every failure is treated as a miss and logged; the cache never
// fails a request.
type RedisPrisonCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies the
// connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisPrisonCache creates a prison cache on an existing Redis client
func NewRedisPrisonCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisPrisonCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPrisonCache{client: client, ttl: ttl, logger: logger}
}

var _ appprison.Cache = (*RedisPrisonCache)(nil)

// Get returns the cached response for a prison id, reporting whether it was
// found
func (c *RedisPrisonCache) Get(ctx context.Context, prisonID string) (*appprison.PrisonResponse, bool) {
	data, err := c.client.Get(ctx, prisonKeyPrefix+prisonID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("prison cache read failed",
				zap.String("prison_id", prisonID),
				zap.Error(err))
		}
		return nil, false
	}

	var response appprison.PrisonResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("prison cache entry corrupt",
			zap.String("prison_id", prisonID),
			zap.Error(err))
		return nil, false
	}
	return &response, true
}

// Set stores a prison response with the configured TTL
func (c *RedisPrisonCache) Set(ctx context.Context, response appprison.PrisonResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		c.logger.Warn("prison cache serialize failed",
			zap.String("prison_id", response.PrisonID),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, prisonKeyPrefix+response.PrisonID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("prison cache write failed",
			zap.String("prison_id", response.PrisonID),
			zap.Error(err))
	}
}

// Invalidate drops the cached response for a prison id
func (c *RedisPrisonCache) Invalidate(ctx context.Context, prisonID string) {
	if err := c.client.Del(ctx, prisonKeyPrefix+prisonID).Err(); err != nil {
		c.logger.Warn("prison cache invalidation failed",
			zap.String("prison_id", prisonID),
			zap.Error(err))
	}
}
