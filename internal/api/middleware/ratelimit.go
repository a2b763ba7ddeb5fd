package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/userdesk/user-management/internal/api/metrics"
	redisdb "github.com/userdesk/user-management/internal/infrastructure/db/redis"
)

// Limiter decides whether one more request from key fits the budget.
// retryAfter is only meaningful when ok is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}

// RateLimit returns an echo middleware enforcing limiter per client IP.
// Scope names the limiter in logs, metrics and responses ("general",
// "create"). A limiter backend error fails open: throttling is protection,
// not a correctness guarantee, and a Redis blip must not take the API down.
func RateLimit(limiter Limiter, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !ok {
				metrics.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
				seconds := int(retryAfter.Round(time.Second).Seconds())
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", fmt.Sprint(seconds))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success":    false,
					"message":    "Too many requests. Please try again later.",
					"retryAfter": fmt.Sprintf("%d seconds", seconds),
				})
			}
			return next(c)
		}
	}
}

// RedisLimiter caps requests per key within a rolling window using a shared
// Redis counter, so the budget holds across API instances.
type RedisLimiter struct {
	counter *redisdb.WindowCounter
	max     int64
}

func NewRedisLimiter(counter *redisdb.WindowCounter, max int64) *RedisLimiter {
	return &RedisLimiter{counter: counter, max: max}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	count, retryAfter, err := l.counter.Incr(ctx, key)
	if err != nil {
		return false, 0, err
	}
	return count <= l.max, retryAfter, nil
}

// MemoryLimiter is the in-process fallback used when Redis is not
// configured: a token bucket per key refilling at max requests per window.
// Stale buckets are evicted as new keys arrive.
type MemoryLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   rate.Limit(float64(max) / window.Seconds()),
		burst:   max,
		window:  window,
		clients: make(map[string]*clientBucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.bucket(key).Allow() {
		return true, 0, nil
	}
	return false, l.window, nil
}

func (l *MemoryLimiter) bucket(key string) *rate.Limiter {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.clients[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	for k, entry := range l.clients {
		if now.Sub(entry.lastSeen) > 2*l.window {
			delete(l.clients, k)
		}
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.clients[key] = &clientBucket{limiter: limiter, lastSeen: now}
	return limiter
}
