package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/service"
	"github.com/nextstopchina/forms-api/pkg/config"
	"github.com/nextstopchina/forms-api/pkg/response"

	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
)

// RateLimit returns a fixed-window limiter keyed by client IP, backed by
// Redis so the window survives restarts and is shared across replicas. With
// no Redis client the middleware is a pass-through; a Redis outage fails
// open rather than rejecting submissions.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger, metrics *service.MetricsService) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if client == nil || cfg.MaxRequests <= 0 || cfg.Window <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(cfg.Window.Seconds()))

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("ratelimit_redis_error", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(c.Request.Context(), key, cfg.Window).Err(); err != nil {
				logger.Warn("ratelimit_expire_error", zap.Error(err))
			}
		}

		if count > int64(cfg.MaxRequests) {
			metrics.RateLimited()
			response.Error(c, appErrors.New("RATE_LIMITED", http.StatusTooManyRequests, "Too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
