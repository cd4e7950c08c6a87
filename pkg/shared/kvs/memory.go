package kvs

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time // zero means no expiration
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryStore keeps values in a map. Its contents are lost when the process exits, so the web
// front end uses it for throwaway deployments and tests.
type MemoryStore struct {
	namespace       string
	items           map[string]*memoryItem
	mu              sync.RWMutex
	closed          bool
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupDone     chan struct{}
}

// NewMemoryStore creates a memory store and starts its cleanup goroutine.
func NewMemoryStore(namespace string, cfg MemoryConfig) (*MemoryStore, error) {
	interval := cfg.CleanupInterval
	if interval == 0 {
		interval = defaultCleanupInterval
	}

	store := &MemoryStore{
		namespace:       namespace,
		items:           make(map[string]*memoryItem),
		cleanupInterval: interval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}
	go store.cleanupLoop()
	return store, nil
}

func (m *MemoryStore) key(key string) string {
	return m.namespace + key
}

// Get retrieves a copy of the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	item, ok := m.items[m.key(key)]
	if !ok || item.expired(time.Now()) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), item.value...), nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	item := &memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	m.items[m.key(key)] = item
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, m.key(key))
	return nil
}

// Exists reports whether key holds a live value.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	switch err {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

// List returns live keys with the given prefix, namespace removed.
func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	full := m.key(prefix)
	now := time.Now()
	var keys []string
	for k, item := range m.items {
		if strings.HasPrefix(k, full) && !item.expired(now) {
			keys = append(keys, strings.TrimPrefix(k, m.namespace))
		}
	}
	return keys, nil
}

// Count returns the number of live keys with the given prefix.
func (m *MemoryStore) Count(ctx context.Context, prefix string) (int, error) {
	keys, err := m.List(ctx, prefix)
	return len(keys), err
}

// Close stops the cleanup goroutine and drops all items.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.closed = true
	m.mu.Unlock()

	close(m.stopCleanup)
	<-m.cleanupDone

	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.purgeExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *MemoryStore) purgeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, item := range m.items {
		if item.expired(now) {
			delete(m.items, k)
		}
	}
}
