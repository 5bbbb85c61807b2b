package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	userID := uuid.New()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow(userID) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if rl.Allow(userID) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentUsers(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	user1 := uuid.New()
	user2 := uuid.New()

	for i := 0; i < 3; i++ {
		if !rl.Allow(user1) {
			t.Errorf("User1 request %d should be allowed", i+1)
		}
	}
	if rl.Allow(user1) {
		t.Error("User1 should be rate limited")
	}

	// User2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(user2) {
			t.Errorf("User2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_SkipsAnonymous(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/assistant/query", nil), rec)

		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitsUser(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2)
	defer rl.Stop()

	userID := uuid.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	request := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/query", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
		rec := httptest.NewRecorder()
		if err := RateLimitMiddleware(rl)(handler)(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return rec
	}

	for i := 0; i < 2; i++ {
		rec := request()
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "10" {
			t.Errorf("Request %d: expected X-RateLimit-Limit 10, got %q", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	rec := request()
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	// 10 per minute refills one token every 6 seconds
	if got := rec.Header().Get("Retry-After"); got == "" || got == "0" {
		t.Errorf("Expected positive Retry-After, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %q", got)
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1) // one token per second
	defer rl.Stop()

	userID := uuid.New()
	start := time.Now()

	if ok, _ := rl.take(userID, start); !ok {
		t.Fatal("First request should be allowed")
	}
	ok, wait := rl.take(userID, start)
	if ok {
		t.Fatal("Second immediate request should be limited")
	}
	if wait <= 0 || wait > time.Second {
		t.Errorf("Expected wait within (0, 1s], got %v", wait)
	}
	if ok, _ := rl.take(userID, start.Add(time.Second)); !ok {
		t.Error("Request after refill should be allowed")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	rl.Stop()
}
