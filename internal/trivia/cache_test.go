package trivia

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl), mr
}

func TestCacheMissThenHit(t *testing.T) {
	cache, _ := newRedisCache(t, time.Minute)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	cats := []Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	require.NoError(t, cache.Set(ctx, cats))

	got, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cats, got)
}

func TestCacheEntryExpires(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []Category{{ID: 1, Type: "Science"}}))
	mr.FastForward(2 * time.Minute)

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDefaultTTL(t *testing.T) {
	cache, mr := newRedisCache(t, 0)

	require.NoError(t, cache.Set(context.Background(), []Category{{ID: 1, Type: "Science"}}))

	assert.Equal(t, defaultCategoryCacheTTL, mr.TTL(categoriesKey))
}

func TestCacheCorruptPayload(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	require.NoError(t, mr.Set(categoriesKey, "not json"))

	_, hit, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, hit)
}
