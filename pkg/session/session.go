// Package session keeps what the console remembers between requests: the bearer token
// returned by login and, for the web front end, the browser session records.
package session

import (
	"errors"
	"time"
)

// DefaultTTL is how long an idle browser session is kept.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrSessionNotFound is returned when a session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoToken is returned when no token has been stored yet.
	ErrNoToken = errors.New("no session token stored")
)

// Session is a browser session of the web front end. Its id is the value of the
// session cookie and also namespaces the browser's token in the store.
type Session struct {
	ID        string    `json:"id"`
	Lang      string    `json:"lang,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session ended before now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
