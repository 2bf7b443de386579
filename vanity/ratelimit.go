package vanity

import (
	"context"
	"sync"
	"time"
)

// RateLimiter bounds outbound calls to maxRequests per sliding time window.
// The whole prune-check-record sequence runs under one mutex, so two callers
// can never both observe spare capacity and exceed the limit. A caller that
// finds the window full sleeps out the remainder while holding the lock,
// which also serializes waiting callers in arrival order.
type RateLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	requests []time.Time
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{max: max, window: window}
}

// Acquire blocks until the trailing window has capacity for one more request,
// then records it. It returns early with the context error on cancellation.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.prune(now)

	if len(rl.requests) >= rl.max {
		sleep := rl.window - now.Sub(rl.requests[0])
		if sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
			rl.prune(time.Now())
		}
	}

	rl.requests = append(rl.requests, time.Now())
	return nil
}

// prune drops recorded requests older than the window. Callers hold rl.mu.
func (rl *RateLimiter) prune(now time.Time) {
	cut := 0
	for cut < len(rl.requests) && now.Sub(rl.requests[cut]) > rl.window {
		cut++
	}
	if cut > 0 {
		rl.requests = rl.requests[cut:]
	}
}
