package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/redis/go-redis/v9"
)

// LikedYouTTL bounds how long a cached liked-you count survives without
// being refreshed by a read or a swipe.
const LikedYouTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	opts := &redis.Options{Addr: cfg.Addr}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyLikedYou(userID uint) string {
	return fmt.Sprintf("likedyou:count:%d", userID)
}

// GetLikedYouCount returns the cached incoming-like count for a user.
// Second return is false on cache miss.
func (c *RedisCache) GetLikedYouCount(ctx context.Context, userID uint) (int64, bool, error) {
	val, err := c.Client.Get(ctx, keyLikedYou(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	// refresh TTL on access, this user is active
	_ = c.Client.Expire(ctx, keyLikedYou(userID), LikedYouTTL).Err()
	return n, true, nil
}

func (c *RedisCache) SetLikedYouCount(ctx context.Context, userID uint, count int64) error {
	return c.Client.Set(ctx, keyLikedYou(userID), count, LikedYouTTL).Err()
}

// InvalidateLikedYouCount drops the cached count after a swipe toward userID.
func (c *RedisCache) InvalidateLikedYouCount(ctx context.Context, userID uint) error {
	return c.Client.Del(ctx, keyLikedYou(userID)).Err()
}
