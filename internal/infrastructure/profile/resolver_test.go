package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/profile"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

type resolverTestDeps struct {
	repo  *mocks.MockUserProfileRepository
	redis *miniredis.Miniredis
	cache *cache.Cache
}

func newResolverTestDeps(t *testing.T) *resolverTestDeps {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &resolverTestDeps{
		repo:  mocks.NewMockUserProfileRepository(t),
		redis: mr,
		cache: cache.NewCache(client, cache.NamespaceProfile, profile.DefaultTTL),
	}
}

func (d *resolverTestDeps) newResolver() *profile.Resolver {
	return profile.NewResolver(d.repo, d.cache, profile.DefaultTTL)
}

func TestResolver_Resolve_CachesRepositoryResult(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)
	aiko := entity.NewUserProfile("uid-aiko-0001", "Aiko", "aiko@example.com", nil)

	deps.repo.On("FindByUserID", ctx, "uid-aiko-0001").Return(aiko, nil).Once()

	resolver := deps.newResolver()
	first := resolver.Resolve(ctx, "uid-aiko-0001")
	second := resolver.Resolve(ctx, "uid-aiko-0001")

	assert.Equal(t, "Aiko", first.DisplayName)
	assert.Equal(t, "Aiko", second.DisplayName)
	assert.Equal(t, 5*time.Minute, deps.redis.TTL("cache:profile:uid-aiko-0001"))
}

func TestResolver_Resolve_NotFound_ReturnsTruncatedFallback(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	deps.repo.On("FindByUserID", ctx, "abcdefghijklmnop").Return(nil, apperror.NewNotFoundError("user profile"))

	p := deps.newResolver().Resolve(ctx, "abcdefghijklmnop")

	assert.Equal(t, "abcdefgh", p.DisplayName)
	assert.False(t, deps.redis.Exists("cache:profile:abcdefghijklmnop"))
}

func TestResolver_Resolve_StoreError_ReturnsFallback(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	deps.repo.On("FindByUserID", ctx, "uid-broken-01").Return(nil, errors.New("connection refused"))

	p := deps.newResolver().Resolve(ctx, "uid-broken-01")

	assert.Equal(t, "uid-brok", p.DisplayName)
}

func TestResolver_ResolveMany_MixesCacheRepositoryAndFallback(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)
	cached := entity.NewUserProfile("cached-user", "Cached", "", nil)
	stored := entity.NewUserProfile("stored-user", "Stored", "", nil)
	require.NoError(t, deps.cache.Set(ctx, cached.UserID, cached))

	deps.repo.On("FindByUserIDs", ctx, []string{"stored-user", "missing-user-id"}).
		Return([]*entity.UserProfile{stored}, nil)

	got := deps.newResolver().ResolveMany(ctx, []string{"cached-user", "stored-user", "missing-user-id", "stored-user"})

	require.Len(t, got, 3)
	assert.Equal(t, "Cached", got["cached-user"].DisplayName)
	assert.Equal(t, "Stored", got["stored-user"].DisplayName)
	assert.Equal(t, "missing-", got["missing-user-id"].DisplayName)
	assert.True(t, deps.redis.Exists("cache:profile:stored-user"))
}

func TestResolver_ResolveMany_RepositoryError_AllFallbacks(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	deps.repo.On("FindByUserIDs", ctx, mock.Anything).Return(nil, errors.New("timeout"))

	got := deps.newResolver().ResolveMany(ctx, []string{"user-one-id", "user-two-id"})

	assert.Equal(t, "user-one", got["user-one-id"].DisplayName)
	assert.Equal(t, "user-two", got["user-two-id"].DisplayName)
}

func TestResolver_GetOrCreate_Missing_CreatesFromClaims(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)
	claimed := &entity.UserProfile{UserID: "uid-new-user", Email: "kenji@example.com"}

	deps.repo.On("FindByUserID", ctx, "uid-new-user").Return(nil, apperror.NewNotFoundError("user profile"))
	deps.repo.On("Upsert", ctx, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.UserID == "uid-new-user" && p.DisplayName == "kenji"
	})).Return(nil)

	p, err := deps.newResolver().GetOrCreate(ctx, claimed)

	require.NoError(t, err)
	assert.Equal(t, "kenji", p.DisplayName)
	assert.True(t, deps.redis.Exists("cache:profile:uid-new-user"))
}

func TestResolver_GetOrCreate_StoreError_Propagates(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)
	storeErr := errors.New("connection refused")

	deps.repo.On("FindByUserID", ctx, "uid-1").Return(nil, storeErr)

	_, err := deps.newResolver().GetOrCreate(ctx, &entity.UserProfile{UserID: "uid-1"})

	assert.ErrorIs(t, err, storeErr)
}

func TestResolver_Forget_EvictsCachedProfile(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)
	require.NoError(t, deps.cache.Set(ctx, "uid-1", entity.FallbackUserProfile("uid-1")))

	deps.newResolver().Forget(ctx, "uid-1")

	assert.False(t, deps.redis.Exists("cache:profile:uid-1"))
}

func TestResolver_NoCache_AlwaysReadsRepository(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockUserProfileRepository(t)
	aiko := entity.NewUserProfile("uid-aiko", "Aiko", "", nil)
	repo.On("FindByUserID", ctx, "uid-aiko").Return(aiko, nil).Twice()

	resolver := profile.NewResolver(repo, profile.NoCache{}, 0)
	resolver.Resolve(ctx, "uid-aiko")
	resolver.Resolve(ctx, "uid-aiko")
}
