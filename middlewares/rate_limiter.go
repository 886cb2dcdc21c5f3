package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a client IP may stay silent before its
// bucket is dropped.
const DefaultLimiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idle are evicted, at most once per idle period.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	ips       map[string]*visitor
	mu        sync.Mutex
}

// NewRateLimiter allows perSecond requests per second per IP with an equal
// burst.
func NewRateLimiter(perSecond int) *RateLimiter {
	return &RateLimiter{
		limit:     rate.Limit(perSecond),
		burst:     perSecond,
		idle:      DefaultLimiterIdle,
		now:       time.Now,
		lastSweep: time.Now(),
		ips:       make(map[string]*visitor),
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idle {
		rl.evictIdle(now)
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// evictIdle must be called with mu held.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for ip, v := range rl.ips {
		if now.Sub(v.lastSeen) >= rl.idle {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// Len reports how many client IPs currently hold a bucket.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
