package ratelimit

import "sync"

// Gate admits one holder at a time. Form controllers hold it for the duration of a
// submission so a second click while the first request is pending is rejected instead of
// sending a duplicate request.
type Gate struct {
	mu   sync.Mutex
	busy bool
}

// TryEnter reports whether the caller acquired the gate. Callers that got true must Leave.
func (g *Gate) TryEnter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Leave releases the gate.
func (g *Gate) Leave() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Busy reports whether a submission is in flight.
func (g *Gate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
