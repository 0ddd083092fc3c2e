package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value := []byte(`{"irr":"5.1"}`)
	require.NoError(t, c.Set(ctx, "k", value, 0))
	value[0] = 'X' // caller mutation must not leak into the cache

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"irr":"5.1"}`, string(got))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewMemoryCache()

	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), 0), context.Canceled)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, key, []byte{byte(j)}, 0)
				_, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, c.Len())
}

func TestMemoryCache_SweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("old-%d", i), []byte("v"), time.Hour))
	}
	require.Equal(t, 50, c.Len())

	now = now.Add(2 * time.Hour)
	require.NoError(t, c.Set(ctx, "fresh", []byte("v"), time.Hour))
	assert.Equal(t, 1, c.Len())

	got, err := c.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithLimit(3)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "soon", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "later", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "forever", []byte("3"), 0))
	require.NoError(t, c.Set(ctx, "new", []byte("4"), time.Hour))

	assert.Equal(t, 3, c.Len())
	_, err := c.Get(ctx, "soon")
	assert.ErrorIs(t, err, ErrCacheMiss, "entry closest to expiry is evicted first")
	for _, key := range []string{"later", "forever", "new"} {
		_, err := c.Get(ctx, key)
		assert.NoError(t, err, key)
	}

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "new", []byte("5"), time.Hour))
	assert.Equal(t, 3, c.Len())
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c CacheRepository = NopCache{}
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// nothing listens on port 1
	c := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	defer c.Close()

	_, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCacheMiss), "connection failures are not misses")
	assert.Error(t, c.Ping(ctx))
}
