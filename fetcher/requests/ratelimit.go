package requests

import (
	"sync"
	"time"
)

// Single riot rate limiting window.
type riotLimit struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Full riot rate limit, containing all the constraints.
// Keeps the engine under the development key budget before the API
// ever has to answer with a 429.
type RateLimiter struct {
	windows []*riotLimit
	mu      sync.Mutex
}

// Create a instance of the rate limiter with the default riot key windows.
func CreateRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: []*riotLimit{
			{
				limit:         20,
				resetInterval: time.Second,
				lastReset:     time.Now(),
			},
			{
				limit:         100,
				resetInterval: 2 * time.Minute,
				lastReset:     time.Now(),
			},
		},
	}
}

// Reset the count of each window that elapsed.
func (r *RateLimiter) resetCounts() {
	now := time.Now()
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}

// Check if any window is on it's limits.
func (r *RateLimiter) checkLimits() bool {
	for _, window := range r.windows {
		if window.count >= window.limit {
			return false
		}
	}
	return true
}

// Loop through each window and increment the counter.
func (r *RateLimiter) incrementCounts() {
	for _, window := range r.windows {
		window.count++
	}
}

// Wait blocks until a request slot is available on every window.
func (r *RateLimiter) Wait() {
	for {
		r.mu.Lock()
		r.resetCounts()

		if r.checkLimits() {
			r.incrementCounts()
			r.mu.Unlock()
			return
		}

		// See how many time must wait for the most limited window.
		var waitTime time.Duration
		for _, window := range r.windows {
			if window.count < window.limit {
				continue
			}

			waitTill := window.resetInterval - time.Since(window.lastReset)
			if waitTill > waitTime {
				waitTime = waitTill
			}
		}
		r.mu.Unlock()

		time.Sleep(waitTime)
	}
}
