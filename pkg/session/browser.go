package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brazucaphish/console/pkg/shared/kvs"
	"github.com/google/uuid"
)

// Browsers keeps the session records of the web front end, one per session cookie.
type Browsers struct {
	kvs kvs.Store
	ttl time.Duration
	now func() time.Time
}

// NewBrowsers stores records in store. Each record lives ttl after it was last saved;
// zero means DefaultTTL.
func NewBrowsers(store kvs.Store, ttl time.Duration) *Browsers {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Browsers{kvs: store, ttl: ttl, now: time.Now}
}

// Open creates and saves a session with a random id.
func (b *Browsers) Open(ctx context.Context) (*Session, error) {
	now := b.now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now}
	if err := b.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns ErrSessionNotFound for unknown and expired ids.
func (b *Browsers) Load(ctx context.Context, id string) (*Session, error) {
	data, err := b.kvs.Get(ctx, id)
	if errors.Is(err, kvs.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: failed to load %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: corrupt record %s: %w", id, err)
	}
	if s.Expired(b.now()) {
		_ = b.kvs.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

// Save stores s and pushes its expiry ttl into the future.
func (b *Browsers) Save(ctx context.Context, s *Session) error {
	s.ExpiresAt = b.now().Add(b.ttl)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to encode %s: %w", s.ID, err)
	}
	if err := b.kvs.Set(ctx, s.ID, data, b.ttl); err != nil {
		return fmt.Errorf("session: failed to save %s: %w", s.ID, err)
	}
	return nil
}
