package kvs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under "namespace:" prefixed keys, so several web front
// end replicas can share browser sessions. Expiry uses Redis native TTLs.
type RedisStore struct {
	prefix string
	client *redis.Client
	mu     sync.RWMutex
	closed bool
}

// NewRedisStore connects to Redis and verifies the connection with a PING.
func NewRedisStore(namespace string, cfg RedisConfig) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kvs/redis: failed to connect to %s: %w", cfg.Addr, err)
	}

	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &RedisStore{prefix: prefix, client: client}, nil
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) checkOpen() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Get retrieves a value by key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvs/redis: get failed: %w", err)
	}
	return value, nil
}

// Set stores a value with optional TTL.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("kvs/redis: set failed: %w", err)
	}
	return nil
}

// Delete removes a key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("kvs/redis: delete failed: %w", err)
	}
	return nil
}

// Exists reports whether key holds a live value.
func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := r.checkOpen(); err != nil {
		return false, err
	}
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("kvs/redis: exists check failed: %w", err)
	}
	return n > 0, nil
}

// List scans keys with the given prefix, namespace removed.
func (r *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var keys []string
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kvs/redis: list failed: %w", err)
	}
	return keys, nil
}

// Count returns the number of keys with the given prefix.
func (r *RedisStore) Count(ctx context.Context, prefix string) (int, error) {
	keys, err := r.List(ctx, prefix)
	return len(keys), err
}

// Close closes the client.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("kvs/redis: close failed: %w", err)
	}
	return nil
}
