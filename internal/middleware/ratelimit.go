package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts requests per key in a fixed Redis window, so the
// limit holds across restarts and multiple instances.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for key and reports whether it is within
// the limit. Redis failures fail open.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	rkey := fmt.Sprintf("ratelimit:%s", key)
	count, err := r.client.Incr(ctx, rkey).Result()
	if err != nil {
		log.Printf("[ratelimit] redis incr failed: %v", err)
		return true
	}
	if count == 1 {
		_ = r.client.Expire(ctx, rkey, r.window).Err()
	}
	return count <= int64(r.limit)
}

// RateLimit returns a middleware that limits by client IP.
func RateLimit(limiter *RedisRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
