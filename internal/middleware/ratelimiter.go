package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore is the slice of the redis API the limiter needs.
// *redis.Client satisfies it; tests run against an in-memory implementation.
type CounterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type RateLimiter struct {
	store CounterStore
}

func NewRateLimiter(store CounterStore) *RateLimiter {
	return &RateLimiter{store: store}
}

// Limit allows at most `limit` requests per source IP within `window`. The
// counter lives in redis, so the cap holds across instances. If redis is
// unreachable the request passes; throttling is best effort.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.store.Incr(c, key).Result()
		if err != nil {
			c.Next()
			return
		}

		// First request in the window owns setting the expiry.
		if count == 1 {
			rl.store.Expire(c, key, window)
		}

		if count > int64(limit) {
			retryAfter := int64(window.Seconds())
			if ttl, err := rl.store.TTL(c, key).Result(); err == nil && ttl > 0 {
				retryAfter = int64(ttl.Seconds())
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests",
				"retryAfter": retryAfter,
			})
			return
		}
		c.Next()
	}
}
