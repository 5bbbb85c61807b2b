package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimit = 10 // requests per minute
	DefaultBurstSize = 3

	// Buckets idle this long are forgotten; a fresh bucket starts full anyway
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = 5 * time.Minute
)

// RateLimiter keeps one token bucket per user
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[uuid.UUID]*bucket
	perMinute int
	every     rate.Limit
	burst     int
	stop      chan struct{}
	stopOnce  sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the default budget
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter allowing requestsPerMinute with the given burst.
// Call Stop to end its background sweep.
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[uuid.UUID]*bucket),
		perMinute: requestsPerMinute,
		every:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:     burstSize,
		stop:      make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (r *RateLimiter) bucketFor(userID uuid.UUID, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buckets[userID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.every, r.burst)}
		r.buckets[userID] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Allow reports whether userID may make a request now, consuming a token if so
func (r *RateLimiter) Allow(userID uuid.UUID) bool {
	ok, _ := r.take(userID, time.Now())
	return ok
}

// take consumes a token or reports how long until one is available
func (r *RateLimiter) take(userID uuid.UUID, now time.Time) (bool, time.Duration) {
	lim := r.bucketFor(userID, now)
	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// remaining is the whole number of tokens left for userID
func (r *RateLimiter) remaining(userID uuid.UUID, now time.Time) int {
	tokens := r.bucketFor(userID, now).TokensAt(now)
	if tokens < 0 {
		return 0
	}
	return int(math.Floor(tokens))
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			r.mu.Lock()
			for id, b := range r.buckets {
				if now.Sub(b.lastSeen) > limiterIdleTTL {
					delete(r.buckets, id)
				}
			}
			r.mu.Unlock()
		case <-r.stop:
			return
		}
	}
}

// Stop ends the background sweep; it is safe to call more than once
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// RateLimitMiddleware limits requests per authenticated user and answers 429
// with Retry-After once the bucket is empty. It must run after RequireUser.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == uuid.Nil {
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))

			now := time.Now()
			ok, wait := rl.take(userID, now)
			if !ok {
				retryAfter := int(math.Ceil(wait.Seconds()))
				h.Set("X-RateLimit-Remaining", "0")
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))
				log.Warn().Str("user_id", userID.String()).Str("path", c.Path()).Int("retry_after", retryAfter).Msg("Rate limit exceeded")
				return rateLimitError(c, retryAfter)
			}

			h.Set("X-RateLimit-Remaining", strconv.Itoa(rl.remaining(userID, now)))
			return next(c)
		}
	}
}
