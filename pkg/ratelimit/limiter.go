// Package ratelimit throttles form posts per browser session and keeps a form from being
// submitted twice while its first request is still pending.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket per key: rate requests per interval, refilled all at once when
// an interval has passed.
type Limiter struct {
	buckets  map[string]*bucket
	mu       sync.Mutex
	rate     int
	interval time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewLimiter creates a limiter. A rate of zero or less rejects every request.
func NewLimiter(rate int, interval time.Duration) *Limiter {
	return &Limiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}
}

// Allow consumes a token for key and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rate <= 0 {
		return false
	}

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: l.rate - 1, lastRefill: now}
		return true
	}

	if elapsed := now.Sub(b.lastRefill); elapsed >= l.interval {
		b.tokens = l.rate
		b.lastRefill = b.lastRefill.Add(elapsed / l.interval * l.interval)
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Reset clears the bucket of key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Cleanup drops buckets not refilled within maxAge.
func (l *Limiter) Cleanup(maxAge time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) > maxAge {
			delete(l.buckets, key)
		}
	}
}

// Configure changes the rate and interval. Buckets keep their tokens until their next refill.
func (l *Limiter) Configure(rate int, interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rate = rate
	l.interval = interval
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
