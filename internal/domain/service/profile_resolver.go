package service

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// ProfileResolver はユーザーIDから表示用プロファイルを解決します
// 解決はベストエフォートで、取得に失敗してもエラーを返さず代替プロファイルを返します
type ProfileResolver interface {
	// Resolve は単一ユーザーのプロファイルを返します
	Resolve(ctx context.Context, userID string) *entity.UserProfile

	// ResolveMany は複数ユーザーのプロファイルをユーザーIDをキーに返します
	ResolveMany(ctx context.Context, userIDs []string) map[string]*entity.UserProfile

	// GetOrCreate はプロファイルを取得し、無ければIdPから得た情報で作成します
	GetOrCreate(ctx context.Context, claimed *entity.UserProfile) (*entity.UserProfile, error)

	// Forget はキャッシュ済みのプロファイルを破棄します
	Forget(ctx context.Context, userID string)
}
