package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// JoinRequestRepository は参加リクエストリポジトリのインターフェース
type JoinRequestRepository interface {
	// Create は参加リクエストを作成します
	// 同一(group, user)の保留中リクエストが既にある場合はCONFLICTを返します
	Create(ctx context.Context, request *entity.JoinRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)

	// UpdateStatus は保留中のリクエストの状態のみを更新します
	// 既に処理済みの場合はJOIN_REQUEST_NOT_PENDINGを返します
	UpdateStatus(ctx context.Context, request *entity.JoinRequest) error

	// 検索
	FindPendingByGroupAndUser(ctx context.Context, groupID uuid.UUID, userID string) (*entity.JoinRequest, error)
	ListPendingByGroupID(ctx context.Context, groupID uuid.UUID, limit int) ([]*entity.JoinRequest, error)
	CountPendingByGroupID(ctx context.Context, groupID uuid.UUID) (int, error)

	// 削除
	DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error
	DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error)
}
