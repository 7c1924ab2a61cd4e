package security

import (
	"fmt"
	"net/http"
	"time"

	"quest_backend/internal/util"
	"quest_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "quest:ratelimit:"

// RedisRateLimiter counts requests per client IP in fixed windows shared by
// every instance using the same redis. When redis is unreachable the request
// is let through.
func RedisRateLimiter(rdb *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, c.ClientIP(), bucket)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Log.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if incr.Val() > int64(maxRequests) {
			util.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
