// Package profile はユーザープロファイルの解決とキャッシュを提供します
package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// DefaultTTL はプロファイルキャッシュの既定の有効期間です
const DefaultTTL = 5 * time.Minute

// Cache はプロファイルキャッシュのインターフェースです
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NoCache は常にミスするキャッシュです（Redis未設定時）
type NoCache struct{}

func (NoCache) Get(context.Context, string, interface{}) error { return cache.ErrCacheMiss }

func (NoCache) GetMany(context.Context, []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

func (NoCache) Set(context.Context, string, interface{}, ...time.Duration) error { return nil }

func (NoCache) Delete(context.Context, string) error { return nil }

// Resolver はProfileResolverの実装です
// 解決に失敗した場合はユーザーIDの先頭8文字を表示名とする代替プロファイルを返します
type Resolver struct {
	repo  repository.UserProfileRepository
	cache Cache
	ttl   time.Duration
}

// NewResolver は新しいResolverを作成します
func NewResolver(repo repository.UserProfileRepository, c Cache, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{repo: repo, cache: c, ttl: ttl}
}

// Resolve は単一ユーザーのプロファイルを返します
func (r *Resolver) Resolve(ctx context.Context, userID string) *entity.UserProfile {
	var cached entity.UserProfile
	if err := r.cache.Get(ctx, userID, &cached); err == nil {
		return &cached
	}

	profile, err := r.repo.FindByUserID(ctx, userID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			logger.Warn(ctx, "profile lookup failed, using fallback", "target_user_id", userID, "error", err)
		}
		return entity.FallbackUserProfile(userID)
	}

	r.remember(ctx, profile)
	return profile
}

// ResolveMany は複数ユーザーのプロファイルを返します
// キャッシュに無いものはまとめて取得し、見つからないユーザーには代替プロファイルを割り当てます
func (r *Resolver) ResolveMany(ctx context.Context, userIDs []string) map[string]*entity.UserProfile {
	result := make(map[string]*entity.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result
	}

	hits, err := r.cache.GetMany(ctx, userIDs)
	if err != nil {
		logger.Debug(ctx, "profile cache unavailable", "error", err)
		hits = nil
	}

	misses := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, done := result[id]; done {
			continue
		}
		if data, ok := hits[id]; ok {
			var p entity.UserProfile
			if json.Unmarshal(data, &p) == nil {
				result[id] = &p
				continue
			}
		}
		result[id] = nil
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		profiles, err := r.repo.FindByUserIDs(ctx, misses)
		if err != nil {
			logger.Warn(ctx, "batch profile lookup failed, using fallbacks", "count", len(misses), "error", err)
		}
		for _, p := range profiles {
			result[p.UserID] = p
			r.remember(ctx, p)
		}
	}

	for id, p := range result {
		if p == nil {
			result[id] = entity.FallbackUserProfile(id)
		}
	}
	return result
}

// GetOrCreate はプロファイルを取得し、無ければIdPのクレームから作成します
func (r *Resolver) GetOrCreate(ctx context.Context, claimed *entity.UserProfile) (*entity.UserProfile, error) {
	profile, err := r.repo.FindByUserID(ctx, claimed.UserID)
	if err == nil {
		r.remember(ctx, profile)
		return profile, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	profile = entity.NewUserProfile(claimed.UserID, claimed.DisplayName, claimed.Email, claimed.PhotoURL)
	if err := r.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user profile created", "target_user_id", profile.UserID)

	r.remember(ctx, profile)
	return profile, nil
}

// Forget はキャッシュ済みのプロファイルを破棄します
func (r *Resolver) Forget(ctx context.Context, userID string) {
	if err := r.cache.Delete(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to evict cached profile", "target_user_id", userID, "error", err)
	}
}

func (r *Resolver) remember(ctx context.Context, profile *entity.UserProfile) {
	if err := r.cache.Set(ctx, profile.UserID, profile, r.ttl); err != nil {
		logger.Debug(ctx, "failed to cache profile", "target_user_id", profile.UserID, "error", err)
	}
}

var (
	_ service.ProfileResolver = (*Resolver)(nil)
	_ Cache                   = (*cache.Cache)(nil)
	_ Cache                   = NoCache{}
)
