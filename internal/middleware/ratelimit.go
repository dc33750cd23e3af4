package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a Redis fixed-window limiter shared by every API instance.
// A nil client or a Redis failure lets requests through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	log    *zap.Logger
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string, log *zap.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix, log: log}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		count, err := rl.incr(c.Request.Context(), rl.key(c))
		if err != nil {
			rl.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "rate_limited",
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

// key prefers the authenticated user over the client address.
func (rl *RateLimiter) key(c *gin.Context) string {
	if u, ok := CurrentUser(c); ok {
		return rl.prefix + ":user:" + u.ID
	}
	return rl.prefix + ":ip:" + c.ClientIP()
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	n, ok := res.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected rate limit script result %T", res)
	}
	return n, nil
}
