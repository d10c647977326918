package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const rateLimitWindow = 24 * time.Hour

// CounterStore is the subset of the redis client the limiter needs
type CounterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RequestRateLimiter caps the number of cleanup requests a caller may submit
// per day. Authenticated callers are counted per user, anonymous ones per IP.
// A nil store disables the limit.
func RequestRateLimiter(rdb CounterStore, queuePrefix string, limit int) gin.HandlerFunc {
	logger := log.WithField("prefix", "ratelimit")

	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		caller := c.GetString(UserIDKey)
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}

		// Create individual key for each caller
		key := queuePrefix + ":" + caller
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// the limiter fails open so a redis outage does not block submissions
			logger.WithError(err).Warn("redis error incrementing count")
			c.Next()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := rdb.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				logger.WithError(err).Warn("redis error setting TTL")
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
