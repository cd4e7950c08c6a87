package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(rate int, interval time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(rate, interval)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("session-a"), "request %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("session-a"), "4th request should be blocked")
}

func TestLimiter_Refill(t *testing.T) {
	limiter, clock := newTestLimiter(2, 100*time.Millisecond)

	limiter.Allow("k")
	limiter.Allow("k")
	assert.False(t, limiter.Allow("k"))

	clock.Advance(150 * time.Millisecond)
	assert.True(t, limiter.Allow("k"))
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))
}

func TestLimiter_IndependentKeysAndReset(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
	assert.False(t, limiter.Allow("a"))

	limiter.Reset("a")
	assert.True(t, limiter.Allow("a"))
}

func TestLimiter_ZeroRate(t *testing.T) {
	limiter, _ := newTestLimiter(0, time.Second)
	assert.False(t, limiter.Allow("a"))
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(5, time.Second)
	limiter.Allow("old")
	clock.Advance(time.Hour)
	limiter.Allow("new")

	limiter.Cleanup(time.Minute)
	assert.Equal(t, 1, limiter.size())
}

func TestLimiter_Configure(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)

	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))

	limiter.Configure(3, time.Second)
	clock.Advance(time.Second)
	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
}

func TestGate(t *testing.T) {
	var g Gate
	assert.True(t, g.TryEnter())
	assert.True(t, g.Busy())
	assert.False(t, g.TryEnter())
	g.Leave()
	assert.False(t, g.Busy())
	assert.True(t, g.TryEnter())
}

func TestGate_OneWinnerUnderContention(t *testing.T) {
	var (
		g       Gate
		winners atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryEnter() {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}
