package kvs

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend builds a fresh store and a function that moves its clock past a TTL.
type backend struct {
	name    string
	open    func(t *testing.T) Store
	advance func(d time.Duration)
}

func backends(t *testing.T) []backend {
	mr := miniredis.RunT(t)
	return []backend{
		{
			name: "memory",
			open: func(t *testing.T) Store {
				s, err := NewMemoryStore("", MemoryConfig{})
				require.NoError(t, err)
				return s
			},
			advance: func(d time.Duration) { time.Sleep(d) },
		},
		{
			name: "leveldb",
			open: func(t *testing.T) Store {
				s, err := NewLevelDBStore("", LevelDBConfig{Path: filepath.Join(t.TempDir(), "db")})
				require.NoError(t, err)
				return s
			},
			advance: func(d time.Duration) { time.Sleep(d) },
		},
		{
			name: "redis",
			open: func(t *testing.T) Store {
				mr.FlushAll()
				s, err := NewRedisStore("test", RedisConfig{Addr: mr.Addr()})
				require.NoError(t, err)
				return s
			},
			advance: func(d time.Duration) { mr.FastForward(d) },
		},
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			defer store.Close()

			_, err := store.Get(ctx, "authToken")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "authToken", []byte("tok-1"), 0))
			got, err := store.Get(ctx, "authToken")
			require.NoError(t, err)
			assert.Equal(t, "tok-1", string(got))

			ok, err := store.Exists(ctx, "authToken")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, store.Set(ctx, "session:a", []byte("1"), 0))
			require.NoError(t, store.Set(ctx, "session:b", []byte("2"), 0))
			keys, err := store.List(ctx, "session:")
			require.NoError(t, err)
			sort.Strings(keys)
			assert.Equal(t, []string{"session:a", "session:b"}, keys)

			n, err := store.Count(ctx, "session:")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			require.NoError(t, store.Delete(ctx, "authToken"))
			require.NoError(t, store.Delete(ctx, "authToken"))
			ok, err = store.Exists(ctx, "authToken")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreTTL(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			defer store.Close()

			require.NoError(t, store.Set(ctx, "short", []byte("v"), 50*time.Millisecond))
			require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

			b.advance(120 * time.Millisecond)

			_, err := store.Get(ctx, "short")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = store.Get(ctx, "forever")
			assert.NoError(t, err)
		})
	}
}

func TestStoreClosed(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			require.NoError(t, store.Close())

			assert.ErrorIs(t, store.Close(), ErrClosed)
			_, err := store.Get(ctx, "k")
			assert.True(t, errors.Is(err, ErrClosed))
			assert.ErrorIs(t, store.Set(ctx, "k", nil, 0), ErrClosed)
		})
	}
}

func TestNamespacedStore(t *testing.T) {
	ctx := context.Background()
	base, err := NewMemoryStore("", MemoryConfig{})
	require.NoError(t, err)
	defer base.Close()

	alice := NewNamespacedStore(base, "session:alice:")
	bob := NewNamespacedStore(base, "session:bob:")

	require.NoError(t, alice.Set(ctx, "authToken", []byte("a"), 0))
	_, err = bob.Get(ctx, "authToken")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := alice.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"authToken"}, keys)

	require.NoError(t, alice.Close())
	_, err = base.Get(ctx, "session:alice:authToken")
	assert.NoError(t, err, "closing a namespace must not close the backend")

	assert.Same(t, Store(base), NewNamespacedStore(base, ""))
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(Config{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, s.Close())

	s, err = New(Config{LevelDB: LevelDBConfig{Path: filepath.Join(t.TempDir(), "db")}})
	require.NoError(t, err)
	assert.IsType(t, &LevelDBStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(Config{Type: "etcd"})
	assert.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	now := time.Now()

	value, expired, err := decodeValue(encodeValue([]byte("x"), time.Hour), now)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, "x", string(value))

	_, expired, err = decodeValue(encodeValue([]byte("x"), time.Millisecond), now.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, expired)

	_, _, err = decodeValue([]byte{1, 2}, now)
	assert.Error(t, err)
}

func TestDefaultLevelDBPath(t *testing.T) {
	assert.Equal(t, "brazucaphish", filepath.Base(DefaultLevelDBPath("")))
	assert.Equal(t, "brazucaphish-web-1", filepath.Base(DefaultLevelDBPath("web/1")))
}
