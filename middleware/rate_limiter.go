package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a sliding-window limiter backed by redis. The window is a
// sorted set of request timestamps per client key; requests older than the
// window are trimmed on every hit. A redis outage fails open so the API
// keeps serving.
func RateLimit(rdb *redis.Client, name string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, clientKey(c))
		now := time.Now()

		pipe := rdb.Pipeline()
		pipe.ZRemRangeByScore(c.Request.Context(), key, "0",
			fmt.Sprintf("%d", now.Add(-window).UnixNano()))
		countCmd := pipe.ZCard(c.Request.Context(), key)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			c.Next()
			return
		}

		if countCmd.Val() >= int64(maxRequests) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many requests, slow down",
			})
			c.Abort()
			return
		}

		pipe = rdb.Pipeline()
		pipe.ZAdd(c.Request.Context(), key, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: now.UnixNano(),
		})
		pipe.Expire(c.Request.Context(), key, window)
		_, _ = pipe.Exec(c.Request.Context())

		c.Next()
	}
}

// clientKey scopes the limit to the authenticated user when possible and
// falls back to the client IP for anonymous endpoints like login.
func clientKey(c *gin.Context) string {
	if userUUID, exists := c.Get("userUUID"); exists {
		return userUUID.(string)
	}
	return c.ClientIP()
}
