package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/utils/cache"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"go.uber.org/zap"
)

// WriteThrottle caps write requests per client IP in a fixed window kept in
// Redis.
type WriteThrottle struct {
	redisCache *cache.RedisCache
	limit      int64
	window     time.Duration
	log        *zap.Logger
}

// NewWriteThrottle creates a throttle allowing limit writes per window
func NewWriteThrottle(redisCache *cache.RedisCache, limit int, window time.Duration, log *zap.Logger) *WriteThrottle {
	if log == nil {
		log = zap.NewNop()
	}
	return &WriteThrottle{
		redisCache: redisCache,
		limit:      int64(limit),
		window:     window,
		log:        log,
	}
}

// Handler is the middleware. A nil throttle, a non-positive limit or an
// unreachable Redis let every request through.
func (w *WriteThrottle) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if w == nil || w.redisCache == nil || w.limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("write_throttle:%s", c.IP())

		count, err := w.redisCache.Increment(ctx, key)
		if err != nil {
			w.log.Warn("write throttle unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := w.redisCache.Expire(ctx, key, w.window); err != nil {
				w.log.Warn("write throttle expire failed", zap.Error(err))
			}
		}

		if count > w.limit {
			retryAfter := int(w.window.Seconds())
			if ttl, err := w.redisCache.TTL(ctx, key); err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many requests. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}
