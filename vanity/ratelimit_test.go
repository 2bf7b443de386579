package vanity

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(5, time.Second)

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := rl.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first %d acquires should not block, took %s", 5, elapsed)
	}
}

func TestRateLimiterBound(t *testing.T) {
	// 3 requests per 100ms window; 7 back-to-back acquires must take at
	// least two full windows (requests 4-6 wait one window, request 7 a
	// second one).
	const (
		max    = 3
		window = 100 * time.Millisecond
		n      = 7
	)
	rl := NewRateLimiter(max, window)

	start := time.Now()
	for i := 0; i < n; i++ {
		if err := rl.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	if minimum := 2 * window * 9 / 10; elapsed < minimum {
		t.Errorf("%d acquires at %d/%s finished in %s, want at least %s", n, max, window, elapsed, minimum)
	}
}

func TestRateLimiterCancellation(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if err := rl.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Acquire(ctx)
	if err == nil {
		t.Fatal("Acquire should fail when the context expires before capacity frees")
	}
	if time.Since(start) > time.Second {
		t.Error("canceled Acquire should return promptly")
	}
}

func TestRateLimiterSerializesCallers(t *testing.T) {
	const (
		max    = 2
		window = 50 * time.Millisecond
		n      = 10
	)
	rl := NewRateLimiter(max, window)

	done := make(chan time.Time, n)
	for i := 0; i < n; i++ {
		go func() {
			if err := rl.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
			}
			done <- time.Now()
		}()
	}

	var stamps []time.Time
	for i := 0; i < n; i++ {
		stamps = append(stamps, <-done)
	}

	// No window may contain more than max completions. Compared against 90%
	// of the window to absorb scheduling jitter around the boundary.
	for i := range stamps {
		count := 0
		for j := range stamps {
			d := stamps[j].Sub(stamps[i])
			if d >= 0 && d < window*9/10 {
				count++
			}
		}
		if count > max {
			t.Fatalf("found %d completions inside one %s window, limit is %d", count, window, max)
		}
	}
}
