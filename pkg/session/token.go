package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brazucaphish/console/pkg/shared/kvs"
	"golang.org/x/oauth2"
)

// TokenKey is the key the bearer token is stored under.
const TokenKey = "authToken"

// TokenStore persists the bearer token returned by login. A new login overwrites the
// previous token; nothing ever clears it.
type TokenStore struct {
	kvs kvs.Store
}

// NewTokenStore wraps a KVS. Pass a namespaced store to keep tokens of different users apart.
func NewTokenStore(store kvs.Store) *TokenStore {
	return &TokenStore{kvs: store}
}

// Save stores token without expiry.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.kvs.Set(ctx, TokenKey, []byte(token), 0); err != nil {
		return fmt.Errorf("session: failed to save token: %w", err)
	}
	return nil
}

// Load returns the stored token, or ErrNoToken.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	data, err := s.kvs.Get(ctx, TokenKey)
	if errors.Is(err, kvs.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("session: failed to load token: %w", err)
	}
	return string(data), nil
}

// TokenSource reads the stored token on every call, so API clients built from it pick up
// a later login without being rebuilt.
func (s *TokenStore) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

type tokenSource struct {
	store *TokenStore
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := ts.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
