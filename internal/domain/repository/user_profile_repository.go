package repository

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// UserProfileRepository はユーザープロファイルリポジトリインターフェースを定義します
type UserProfileRepository interface {
	// FindByUserID はユーザーIDでプロファイルを検索します
	FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)

	// FindByUserIDs は複数ユーザーのプロファイルを一括取得します（存在しないIDは結果に含まれません）
	FindByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error)

	// Upsert はプロファイルを作成または更新します
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}
