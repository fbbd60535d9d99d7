package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelayWait(t *testing.T) {
	var slept []time.Duration
	var mu sync.Mutex

	limiter := NewFixedDelayWithSleep(250*time.Millisecond, func(d time.Duration) {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
	})

	limiter.Wait()
	limiter.Wait()

	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, slept)
}

func TestFixedDelayZeroDoesNotSleep(t *testing.T) {
	called := false
	limiter := NewFixedDelayWithSleep(0, func(time.Duration) { called = true })

	limiter.Wait()

	assert.False(t, called)
}

func TestFixedDelayConcurrentCallers(t *testing.T) {
	var count int
	var mu sync.Mutex

	limiter := NewFixedDelayWithSleep(time.Millisecond, func(time.Duration) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.Wait()
		}()
	}
	wg.Wait()

	// Every caller pays its own delay, nothing is shared.
	assert.Equal(t, 10, count)
}

func TestNoneNeverBlocks(t *testing.T) {
	limiter := None{}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			limiter.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("None limiter blocked")
	}
}

func TestPerMinuteSelectsLimiter(t *testing.T) {
	bucket := PerMinute(60, time.Second)
	assert.IsType(t, &TokenBucket{}, bucket)

	fixed := PerMinute(0, time.Second)
	assert.IsType(t, &FixedDelay{}, fixed)
}

func TestPerMinuteBucketHonorsBudget(t *testing.T) {
	limiter := PerMinute(2, time.Second)
	tb := limiter.(*TokenBucket)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, time.Hour)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	tb.Reset()
	assert.True(t, tb.Allow())
}
