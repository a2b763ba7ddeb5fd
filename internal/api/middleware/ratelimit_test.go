package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestMemoryLimiter_EnforcesCapPerKey(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for n := 1; n <= 3; n++ {
		ok, _, err := limiter.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("request %d: %v", n, err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", n)
		}
	}

	ok, retryAfter, err := limiter.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("fourth request should be rejected")
	}
	if retryAfter <= 0 {
		t.Errorf("retryAfter must be positive, got %v", retryAfter)
	}

	// A different key has its own budget.
	if ok, _, _ := limiter.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("other clients must not share the exhausted bucket")
	}
}

func TestRateLimit_RejectsWithEnvelopeAndRetryHint(t *testing.T) {
	e := echo.New()
	limiter := NewMemoryLimiter(1, time.Minute)
	mw := RateLimit(limiter, "general", zerolog.Nop())

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := call(); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec := call()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["success"] != false || body["retryAfter"] == nil {
		t.Errorf("unexpected body: %+v", body)
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, context.DeadlineExceeded
}

func TestRateLimit_FailsOpenOnBackendError(t *testing.T) {
	e := echo.New()
	mw := RateLimit(brokenLimiter{}, "general", zerolog.Nop())

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("limiter backend failure must not block requests, got %d", rec.Code)
	}
}
