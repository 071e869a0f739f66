package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
)

// RateLimit limits requests per client IP using a fixed redis window.
// When redis is unreachable the request is allowed through.
func RateLimit(client *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || requestsPerMinute <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/60)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", logger.Err(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(requestsPerMinute) {
			response.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
