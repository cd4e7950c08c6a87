package kvs

import (
	"context"
	"strings"
	"time"
)

// NamespacedStore prefixes every key so several logical stores can share one backend.
// The web front end gives each browser session its own namespace:
//
//	base, _ := kvs.New(cfg.Storage)
//	tokens := kvs.NewNamespacedStore(base, "session:"+sessionID+":")
type NamespacedStore struct {
	store  Store
	prefix string
}

// NewNamespacedStore wraps store. An empty prefix returns store itself.
func NewNamespacedStore(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &NamespacedStore{store: store, prefix: prefix}
}

func (n *NamespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *NamespacedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return n.store.Set(ctx, n.prefix+key, value, ttl)
}

func (n *NamespacedStore) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

func (n *NamespacedStore) Exists(ctx context.Context, key string) (bool, error) {
	return n.store.Exists(ctx, n.prefix+key)
}

// List returns keys with the namespace prefix removed.
func (n *NamespacedStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := n.store.List(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, n.prefix)
	}
	return keys, nil
}

func (n *NamespacedStore) Count(ctx context.Context, prefix string) (int, error) {
	return n.store.Count(ctx, n.prefix+prefix)
}

// Close is a no-op: the shared backend is owned and closed by whoever created it.
func (n *NamespacedStore) Close() error {
	return nil
}
