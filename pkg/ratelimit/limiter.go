package ratelimit

import (
	"sync"
	"time"
)

// Limiter is the blocking delay abstraction used before outbound requests
// and between scroll steps. Implementations must be safe for concurrent use.
type Limiter interface {
	// Wait blocks until the next request may proceed.
	Wait()
	// Reset clears any internal pacing state.
	Reset()
}

// FixedDelay blocks every caller for a constant duration. Each caller pays
// the delay independently; there is no shared queue.
type FixedDelay struct {
	delay   time.Duration
	sleepFn func(time.Duration)
}

// NewFixedDelay creates a fixed-delay limiter.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay, sleepFn: time.Sleep}
}

// NewFixedDelayWithSleep creates a fixed-delay limiter with a custom sleep
// function. Tests substitute a no-op to keep control flow without waiting.
func NewFixedDelayWithSleep(delay time.Duration, sleepFn func(time.Duration)) *FixedDelay {
	if sleepFn == nil {
		sleepFn = time.Sleep
	}
	return &FixedDelay{delay: delay, sleepFn: sleepFn}
}

func (f *FixedDelay) Wait() {
	if f.delay > 0 {
		f.sleepFn(f.delay)
	}
}

func (f *FixedDelay) Reset() {}

// PerMinute selects the limiter for an outbound request budget. A
// positive requestsPerMinute yields a token bucket refilled once a
// minute; zero falls back to a fixed delay between requests.
func PerMinute(requestsPerMinute int, fallbackDelay time.Duration) Limiter {
	if requestsPerMinute > 0 {
		return NewTokenBucket(requestsPerMinute, time.Minute)
	}
	return NewFixedDelay(fallbackDelay)
}

// None is a limiter that never blocks.
type None struct{}

func (None) Wait()  {}
func (None) Reset() {}

// TokenBucket allows bursts up to capacity and refills the whole bucket
// once per refill period.
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a token bucket limiter.
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token becomes available.
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		untilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if untilRefill > 0 {
			time.Sleep(untilRefill)
		} else {
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// Reset restores the bucket to full capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}
