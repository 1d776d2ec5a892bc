package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"todolist-web/internal/config"
	"todolist-web/internal/logging"
	"todolist-web/internal/models"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool  `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RequestsPerMin int64 `env:"RATE_LIMIT_REQUESTS_PER_MIN" envDefault:"60"`
}

// NewRateLimitConfigFromEnv creates rate limit config from environment variables
func NewRateLimitConfigFromEnv() (*RateLimitConfig, error) {
	cfg := &RateLimitConfig{}
	if err := config.ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GlobalRateLimiter limits every request per client IP
func GlobalRateLimiter(cfg *RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		logging.Current().Info("Rate limiting is disabled")
		return passThrough
	}

	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  cfg.RequestsPerMin,
	}
	logging.Current().Infof("Rate limiting enabled: %d requests per minute", cfg.RequestsPerMin)
	return newRateLimiter(rate, "global", "Too many requests. Please try again later.")
}

// WriteRateLimiter applies a stricter limit to form posts
func WriteRateLimiter(cfg *RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	limit := cfg.RequestsPerMin / 2
	if limit < 1 {
		limit = 1
	}
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  limit,
	}
	return newRateLimiter(rate, "write", "Too many changes. Please try again later.")
}

func newRateLimiter(rate limiter.Rate, limitType, message string) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		logging.Current().WithFields(logrus.Fields{
			"client_ip":     c.ClientIP(),
			"path":          c.Request.URL.Path,
			"method":        c.Request.Method,
			"rate_limited":  true,
			"limit_type":    limitType,
			"limit_per_min": rate.Limit,
		}).Warn("Rate limit exceeded")

		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
			Code:    "RATE_LIMIT_EXCEEDED",
			Message: message,
			Details: map[string]interface{}{
				"retryAfter": int(rate.Period.Seconds()),
				"limit":      rate.Limit,
			},
		})
	}))
}

func passThrough(c *gin.Context) {
	c.Next()
}
