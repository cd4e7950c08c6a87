package kvs

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore persists values on disk. It is the default store of the terminal front end,
// where the session token has to survive between invocations.
type LevelDBStore struct {
	namespace       string
	db              *leveldb.DB
	mu              sync.RWMutex
	closed          bool
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupDone     chan struct{}
}

// DefaultLevelDBPath returns the directory used when no path is configured.
func DefaultLevelDBPath(namespace string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	name := "brazucaphish"
	if namespace != "" {
		name += "-" + sanitizeDirName(namespace)
	}
	return filepath.Join(base, name)
}

func sanitizeDirName(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, s)
}

// NewLevelDBStore opens (or creates) the database and starts its cleanup goroutine.
// A corrupted database is recovered once before giving up.
func NewLevelDBStore(namespace string, cfg LevelDBConfig) (*LevelDBStore, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultLevelDBPath(namespace)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kvs/leveldb: failed to create directory: %w", err)
	}

	db, err := leveldb.OpenFile(path, &opt.Options{Compression: opt.SnappyCompression})
	if err != nil {
		var corrupted *lerrors.ErrCorrupted
		if errors.As(err, &corrupted) {
			db, err = leveldb.RecoverFile(path, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("kvs/leveldb: failed to open database at %s: %w", path, err)
		}
	}

	interval := cfg.CleanupInterval
	if interval == 0 {
		interval = defaultCleanupInterval
	}

	store := &LevelDBStore{
		namespace:       namespace,
		db:              db,
		cleanupInterval: interval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}
	go store.cleanupLoop()
	return store, nil
}

// Values are stored as [8-byte big-endian expiry in unix nanos, 0 = never][payload].
func encodeValue(value []byte, ttl time.Duration) []byte {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	out := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(out[:8], uint64(expiresAt))
	copy(out[8:], value)
	return out
}

func decodeValue(encoded []byte, now time.Time) (value []byte, expired bool, err error) {
	if len(encoded) < 8 {
		return nil, false, errors.New("kvs/leveldb: invalid encoded value (too short)")
	}
	expiresAt := int64(binary.BigEndian.Uint64(encoded[:8]))
	if expiresAt > 0 && now.UnixNano() > expiresAt {
		return nil, true, nil
	}
	return encoded[8:], false, nil
}

func (l *LevelDBStore) key(key string) []byte {
	return []byte(l.namespace + key)
}

func (l *LevelDBStore) checkOpen() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	return nil
}

// Get retrieves a value by key.
func (l *LevelDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	encoded, err := l.db.Get(l.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvs/leveldb: get failed: %w", err)
	}
	value, expired, err := decodeValue(encoded, time.Now())
	if err != nil {
		return nil, err
	}
	if expired {
		_ = l.db.Delete(l.key(key), nil)
		return nil, ErrNotFound
	}
	return value, nil
}

// Set stores a value with optional TTL.
func (l *LevelDBStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	if err := l.db.Put(l.key(key), encodeValue(value, ttl), nil); err != nil {
		return fmt.Errorf("kvs/leveldb: set failed: %w", err)
	}
	return nil
}

// Delete removes a key.
func (l *LevelDBStore) Delete(ctx context.Context, key string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	if err := l.db.Delete(l.key(key), nil); err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("kvs/leveldb: delete failed: %w", err)
	}
	return nil
}

// Exists reports whether key holds a live value.
func (l *LevelDBStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := l.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// List returns live keys with the given prefix, namespace removed.
func (l *LevelDBStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}

	iter := l.db.NewIterator(util.BytesPrefix(l.key(prefix)), nil)
	defer iter.Release()

	now := time.Now()
	var keys []string
	for iter.Next() {
		if _, expired, err := decodeValue(iter.Value(), now); err != nil || expired {
			continue
		}
		keys = append(keys, strings.TrimPrefix(string(iter.Key()), l.namespace))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("kvs/leveldb: iteration failed: %w", err)
	}
	return keys, nil
}

// Count returns the number of live keys with the given prefix.
func (l *LevelDBStore) Count(ctx context.Context, prefix string) (int, error) {
	keys, err := l.List(ctx, prefix)
	return len(keys), err
}

// Close stops the cleanup goroutine and closes the database.
func (l *LevelDBStore) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	l.mu.Unlock()

	close(l.stopCleanup)
	<-l.cleanupDone

	if err := l.db.Close(); err != nil {
		return fmt.Errorf("kvs/leveldb: close failed: %w", err)
	}
	return nil
}

func (l *LevelDBStore) cleanupLoop() {
	defer close(l.cleanupDone)

	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.purgeExpired()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *LevelDBStore) purgeExpired() {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(l.namespace)), nil)
	defer iter.Release()

	now := time.Now()
	batch := new(leveldb.Batch)
	for iter.Next() {
		if _, expired, err := decodeValue(iter.Value(), now); err == nil && expired {
			batch.Delete(append([]byte(nil), iter.Key()...))
		}
	}
	if batch.Len() > 0 {
		_ = l.db.Write(batch, nil)
	}
}
