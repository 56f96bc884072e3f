package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(*gin.Context) string

// KeyByClient charges the authenticated user when Authenticate already ran
// and the client IP otherwise.
func KeyByClient() KeyFunc {
	return func(c *gin.Context) string {
		if v, ok := c.Get(userIDKey); ok {
			if id, _ := v.(string); id != "" {
				return "user:" + id
			}
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter is an in-process token bucket per client built on
// golang.org/x/time/rate. Buckets idle for longer than idleTTL are swept.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	key    KeyFunc
	exempt []string

	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewRateLimiter refills rps tokens per second up to burst (at least 1).
// Requests whose path starts with one of exempt are never limited.
func NewRateLimiter(rps float64, burst int, key KeyFunc, exempt ...string) *RateLimiter {
	if key == nil {
		key = KeyByClient()
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   max(burst, 1),
		key:     key,
		exempt:  exempt,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (rl *RateLimiter) bucketFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.seen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	return b.lim
}

// size is the number of live buckets.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) isExempt(path string) bool {
	for _, p := range rl.exempt {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}

// IsRateBypass reports whether IdempotencyValidator marked the request as a
// replay of a stored result. Replays are not charged.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}

// Handler answers 429 with a Retry-After in whole seconds once the client's
// bucket is empty:
//
//	{"request_id": "...", "code": "rate_limited", "error": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.isExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		now := rl.now()
		r := rl.bucketFor(rl.key(c), now).ReserveN(now, 1)
		delay := r.DelayFrom(now)
		if r.OK() && delay == 0 {
			c.Next()
			return
		}
		r.CancelAt(now)

		wait := 1
		if r.OK() {
			wait = max(1, int(math.Ceil(delay.Seconds())))
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": GetRequestID(c),
			"code":       "rate_limited",
			"error":      "rate limit exceeded",
		})
	}
}
