package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"squad-be/internal/domain"
	"squad-be/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService provides cache-aside helpers around the Redis client. Every
// method degrades to the database fallback on cache errors; a broken cache
// never fails a request.
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

// GetGroupWithCache retrieves a group snapshot with the cache-aside pattern
func (c *CacheService) GetGroupWithCache(ctx context.Context, groupID string, dbFallback func(ctx context.Context, id string) (*domain.Group, error)) (*domain.Group, error) {
	cacheKey := c.redis.KeyBuilder.KeyGroup(groupID)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var group domain.Group
		if marshalErr := json.Unmarshal([]byte(cachedData), &group); marshalErr == nil {
			c.logger.Debug("Group cache hit", zap.String("group_id", groupID))
			return &group, nil
		}
		c.logger.Warn("Group cache corrupted, falling back to database",
			zap.String("group_id", groupID))
	} else if err != nil && err != goredis.Nil {
		c.logger.Warn("Group cache error, falling back to database",
			zap.String("group_id", groupID),
			zap.Error(err))
	}

	group, err := dbFallback(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("database fallback failed: %w", err)
	}

	if group != nil {
		go c.cacheJSONAsync(cacheKey, group, redis.TTLGroup)
	}

	return group, nil
}

// GetMembersWithCache retrieves a group's member snapshot with the
// cache-aside pattern. The snapshot feeds warm-up percentages, so the TTL
// is short.
func (c *CacheService) GetMembersWithCache(ctx context.Context, groupID string, dbFallback func(ctx context.Context, id string) ([]domain.Member, error)) ([]domain.Member, error) {
	cacheKey := c.redis.KeyBuilder.KeyGroupMembers(groupID)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var members []domain.Member
		if marshalErr := json.Unmarshal([]byte(cachedData), &members); marshalErr == nil {
			c.logger.Debug("Members cache hit", zap.String("group_id", groupID))
			return members, nil
		}
		c.logger.Warn("Members cache corrupted, falling back to database",
			zap.String("group_id", groupID))
	} else if err != nil && err != goredis.Nil {
		c.logger.Warn("Members cache error, falling back to database",
			zap.String("group_id", groupID),
			zap.Error(err))
	}

	members, err := dbFallback(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("database fallback failed: %w", err)
	}

	if members != nil {
		go c.cacheJSONAsync(cacheKey, members, redis.TTLGroupMembers)
	}

	return members, nil
}

// CacheMemberAnswer records a member's latest answer and drops the stale
// board cache in one round trip, so "has this member responded" checks stay
// cheap while the board reflects the new answer on the next read.
func (c *CacheService) CacheMemberAnswer(ctx context.Context, groupID, checkID, memberID string, response domain.ResponseValue) error {
	pipe := c.redis.Pipeline()
	pipe.Set(ctx, c.redis.KeyBuilder.KeyMemberAnswer(checkID, memberID), string(response), redis.TTLMemberAnswer)
	pipe.Del(ctx, c.redis.KeyBuilder.KeyCheckBoard(groupID))

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error("Failed to cache member answer",
			zap.String("check_id", checkID),
			zap.String("member_id", memberID),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Member answer cached",
		zap.String("check_id", checkID),
		zap.String("member_id", memberID))
	return nil
}

// InvalidateGroupCaches invalidates every cache derived from a group's state.
// Fire and forget: invalidation failure only shortens cache accuracy, the
// entries expire on their own TTLs anyway.
func (c *CacheService) InvalidateGroupCaches(groupID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		keysToDelete := []string{
			c.redis.KeyBuilder.KeyGroup(groupID),
			c.redis.KeyBuilder.KeyGroupMembers(groupID),
			c.redis.KeyBuilder.KeyCheckBoard(groupID),
		}

		if err := c.redis.Delete(ctx, keysToDelete...); err != nil {
			c.logger.Error("Failed to invalidate group caches",
				zap.String("group_id", groupID),
				zap.Error(err))
			return
		}

		c.logger.Debug("Group caches invalidated", zap.String("group_id", groupID))
	}()
}

// InvalidateCheckBoard drops the cached ready-check board for a group
func (c *CacheService) InvalidateCheckBoard(ctx context.Context, groupID string) error {
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyCheckBoard(groupID)); err != nil {
		c.logger.Error("Failed to invalidate check board cache",
			zap.String("group_id", groupID),
			zap.Error(err))
		return err
	}
	return nil
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

// cacheJSONAsync marshals and stores a value asynchronously
func (c *CacheService) cacheJSONAsync(key string, value interface{}, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("Failed to marshal value for caching", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, key, string(data), ttl); err != nil {
		c.logger.Error("Failed to cache value", zap.Error(err))
	}
}
