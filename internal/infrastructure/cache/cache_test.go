package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type cachedProfile struct {
	DisplayName string `json:"displayName"`
}

func TestCache_SetGet_RoundTripWithNamespace(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := cache.NewCache(client, cache.NamespaceProfile, 5*time.Minute)

	require.NoError(t, c.Set(ctx, "user-1", cachedProfile{DisplayName: "Aiko"}))

	var got cachedProfile
	require.NoError(t, c.Get(ctx, "user-1", &got))
	assert.Equal(t, "Aiko", got.DisplayName)
	assert.True(t, mr.Exists("cache:profile:user-1"))
	assert.Equal(t, 5*time.Minute, mr.TTL("cache:profile:user-1"))
}

func TestCache_Get_Expired_ReturnsMiss(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := cache.NewCache(client, cache.NamespaceProfile, time.Minute)

	require.NoError(t, c.Set(ctx, "user-1", cachedProfile{DisplayName: "Aiko"}))
	mr.FastForward(2 * time.Minute)

	var got cachedProfile
	assert.ErrorIs(t, c.Get(ctx, "user-1", &got), cache.ErrCacheMiss)
}

func TestCache_GetMany_ReturnsOnlyHits(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	c := cache.NewCache(client, cache.NamespaceProfile, time.Minute)

	require.NoError(t, c.Set(ctx, "a", cachedProfile{DisplayName: "A"}))
	require.NoError(t, c.Set(ctx, "c", cachedProfile{DisplayName: "C"}))

	hits, err := c.GetMany(ctx, []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.JSONEq(t, `{"displayName":"A"}`, string(hits["a"]))
	assert.NotContains(t, hits, "b")
}

func TestCache_Delete_RemovesKey(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	c := cache.NewCache(client, cache.NamespaceProfile, time.Minute)

	require.NoError(t, c.Set(ctx, "a", cachedProfile{DisplayName: "A"}))
	require.NoError(t, c.Delete(ctx, "a"))

	var got cachedProfile
	assert.ErrorIs(t, c.Get(ctx, "a", &got), cache.ErrCacheMiss)
}

func TestRateLimiter_Allow_RejectsAfterLimit(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	limiter := cache.NewRateLimiter(client)
	cfg := cache.RateLimitConfig{Type: "test", Requests: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "user-1", cfg)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, "user-1", cfg)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.True(t, result.ResetAt.After(time.Now()))
}

func TestRateLimiter_Allow_IdentifiersAreIndependent(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	limiter := cache.NewRateLimiter(client)
	cfg := cache.RateLimitConfig{Type: "test", Requests: 1, Window: time.Minute}

	first, err := limiter.Allow(ctx, "user-1", cfg)
	require.NoError(t, err)
	other, err := limiter.Allow(ctx, "user-2", cfg)
	require.NoError(t, err)

	assert.True(t, first.Allowed)
	assert.True(t, other.Allowed)
}
