package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts requests per key within fixed windows backed by
// Redis, so every instance of the API shares the same budget.
// Key format: ratelimit:<scope>:<key>:<window_start_unix>
type WindowCounter struct {
	client *redis.Client
	scope  string
	window time.Duration
}

// NewWindowCounter creates a counter for one rate-limit scope (e.g.
// "general" or "create").
func NewWindowCounter(client *redis.Client, scope string, window time.Duration) *WindowCounter {
	return &WindowCounter{client: client, scope: scope, window: window}
}

// Incr records one request for key and returns the running count within the
// current window plus the time remaining until the window resets.
func (w *WindowCounter) Incr(ctx context.Context, key string) (int64, time.Duration, error) {
	now := time.Now()
	windowStart := now.Truncate(w.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", w.scope, key, windowStart.Unix())

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, w.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate-limit incr: %w", err)
	}

	retryAfter := windowStart.Add(w.window).Sub(now)
	return incr.Val(), retryAfter, nil
}
