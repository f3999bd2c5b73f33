package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Per-IP token bucket. Idle buckets are swept by a background goroutine so
// transient callers do not grow the map without bound.

const cleanupIdleDuration = 10 * time.Minute

type ipBucket struct {
	tokens   float64
	lastSeen time.Time
	mu       sync.Mutex
}

// RateLimiter holds per-IP state.
type RateLimiter struct {
	rate     float64 // tokens added per second
	burst    float64 // max bucket capacity
	mu       sync.Mutex
	buckets  map[string]*ipBucket
	stopOnce sync.Once
	stop     chan struct{}
}

// NewRateLimiter allows ratePerMin requests per minute per IP with a burst
// capacity of burst requests.
func NewRateLimiter(ratePerMin, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:    float64(ratePerMin) / 60.0,
		burst:   float64(burst),
		buckets: make(map[string]*ipBucket),
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop terminates the background sweeper. The limiter itself keeps working;
// only idle-bucket cleanup ends. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	bucket, ok := rl.buckets[ip]
	if !ok {
		bucket = &ipBucket{tokens: rl.burst}
		rl.buckets[ip] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(bucket.lastSeen).Seconds()
	bucket.tokens += elapsed * rl.rate
	if bucket.tokens > rl.burst {
		bucket.tokens = rl.burst
	}
	bucket.lastSeen = now

	if bucket.tokens >= 1.0 {
		bucket.tokens--
		return true, 0
	}

	retryAfter := time.Duration((1.0-bucket.tokens)/rl.rate*1000) * time.Millisecond
	return false, retryAfter
}

// Middleware returns a Gin handler that enforces the rate limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, retryAfter := rl.allow(ip)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Rate limit exceeded",
				"retryAfter": retryAfter.String(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// cleanupLoop removes stale IP buckets every cleanupIdleDuration until Stop.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupIdleDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-cleanupIdleDuration)
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				b.mu.Lock()
				idle := b.lastSeen.Before(cutoff)
				b.mu.Unlock()
				if idle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
