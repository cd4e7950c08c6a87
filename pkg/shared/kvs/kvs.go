// Package kvs provides the key-value store behind the console's persistent token storage,
// with Memory, LevelDB and Redis implementations.
package kvs

import (
	"context"
	"errors"
	"time"
)

// Store is a key-value store with optional TTL. Implementations are safe for concurrent use.
type Store interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value. A ttl of zero or less means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// List returns the live keys starting with prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)

	Count(ctx context.Context, prefix string) (int, error)

	// Close releases resources. Later calls return ErrClosed.
	Close() error
}

var (
	// ErrNotFound is returned when a key is not found or has expired.
	ErrNotFound = errors.New("kvs: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("kvs: store is closed")
)

// Config selects and configures a store.
type Config struct {
	// Type is "memory", "leveldb" or "redis". Empty means leveldb.
	Type      string        `yaml:"type" json:"type"`
	Namespace string        `yaml:"namespace" json:"namespace"`
	Memory    MemoryConfig  `yaml:"memory" json:"memory"`
	LevelDB   LevelDBConfig `yaml:"leveldb" json:"leveldb"`
	Redis     RedisConfig   `yaml:"redis" json:"redis"`
}

// MemoryConfig configures the in-memory store.
type MemoryConfig struct {
	// CleanupInterval is how often expired keys are purged (default 5m).
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// LevelDBConfig configures the LevelDB store.
type LevelDBConfig struct {
	// Path of the database directory. Empty means <user cache dir>/brazucaphish[-namespace].
	Path            string        `yaml:"path" json:"path"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	PoolSize int    `yaml:"pool_size" json:"pool_size"`
}

// New creates the store described by cfg.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case "leveldb", "":
		return NewLevelDBStore(cfg.Namespace, cfg.LevelDB)
	case "memory":
		return NewMemoryStore(cfg.Namespace, cfg.Memory)
	case "redis":
		return NewRedisStore(cfg.Namespace, cfg.Redis)
	default:
		return nil, errors.New("kvs: unsupported store type: " + cfg.Type)
	}
}

const defaultCleanupInterval = 5 * time.Minute
