package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
)

// RateLimiter hands out one token bucket per client. Idle buckets expire
// from the cache, so memory tracks the active client set.
type RateLimiter struct {
	clients *cache.Cache
	limit   rate.Limit
	burst   int
	logger  *zap.Logger
}

// NewRateLimiter allows perSecond requests per client with the given burst.
// A non-positive perSecond disables limiting.
func NewRateLimiter(logger *zap.Logger, perSecond float64, burst int) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if burst < 1 {
		burst = 1
	}
	idle := 10 * time.Minute
	return &RateLimiter{
		clients: cache.New(idle, 2*idle),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		logger:  logger,
	}
}

// Allow reports whether the client may make a request now.
func (rl *RateLimiter) Allow(clientID string) bool {
	if rl.limit <= 0 {
		return true
	}
	var lim *rate.Limiter
	if v, ok := rl.clients.Get(clientID); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(rl.limit, rl.burst)
		// Add fails if another request created the bucket first.
		if err := rl.clients.Add(clientID, lim, cache.DefaultExpiration); err != nil {
			if v, ok := rl.clients.Get(clientID); ok {
				lim = v.(*rate.Limiter)
			}
		}
	}
	// Refresh the sliding expiry.
	rl.clients.SetDefault(clientID, lim)
	return lim.Allow()
}

// Middleware rejects over-limit clients with 429 and a JSON detail.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if !rl.Allow(clientID) {
			rl.logger.Warn("Rate limit exceeded",
				zap.String("client_id", clientID),
				zap.String("path", c.FullPath()),
				zap.Float64("limit", float64(rl.limit)),
				zap.Int("burst", rl.burst))
			metrics.Get().APIRateLimitedTotal.Add(c.Request.Context(), 1,
				metric.WithAttributes(attribute.String("path", c.FullPath())))
			c.Header("Retry-After", "2")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
