package anonymize

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedUsers caps the number of tracked limiter keys to prevent memory
// exhaustion from rotating sender IDs.
const maxTrackedUsers = 4096

// RateLimiter enforces a per-user token-bucket limit on prefix commands.
// Safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[int64]*bucket
	r       rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rpm commands per user per minute.
// rpm <= 0 disables limiting (Allow always returns true).
func NewRateLimiter(rpm int) *RateLimiter {
	r := rate.Limit(0)
	if rpm > 0 {
		r = rate.Limit(float64(rpm) / 60.0)
	}
	burst := rpm / 4
	if burst < 3 {
		burst = 3
	}
	return &RateLimiter{
		buckets: make(map[int64]*bucket),
		r:       r,
		burst:   burst,
	}
}

// Allow reports whether the user is within the rate limit.
func (rl *RateLimiter) Allow(userID int64) bool {
	if rl.r == 0 {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Prune stale buckets when approaching the cap.
	if len(rl.buckets) >= maxTrackedUsers {
		cutoff := now.Add(-10 * time.Minute)
		for id, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, id)
			}
		}
		for len(rl.buckets) >= maxTrackedUsers {
			for id := range rl.buckets {
				delete(rl.buckets, id)
				break
			}
		}
	}

	b, ok := rl.buckets[userID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.buckets[userID] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}
