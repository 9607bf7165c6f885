package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

// GroupRepository はグループリポジトリのインターフェース
// メンバー・管理者の変更は読み込み→書き戻しではなく、ストアのアトミック操作で行います
type GroupRepository interface {
	// 基本CRUD
	Create(ctx context.Context, group *entity.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.GroupSettings) error
	Delete(ctx context.Context, id uuid.UUID) error

	// 検索
	FindByCode(ctx context.Context, code valueobject.GroupCode) (*entity.Group, error)
	FindByMemberID(ctx context.Context, userID string) ([]*entity.Group, error)

	// 存在チェック
	ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error)

	// AddMember はmemberIdsへの追加とmemberCountの加算を1回の更新で行います
	// 既にメンバーだった場合はfalseを返し、何も変更しません
	AddMember(ctx context.Context, id uuid.UUID, userID string) (bool, error)

	// RemoveMember はmemberIds/adminIdsからの削除とmemberCountの減算を1回の更新で行います
	// メンバーでなかった場合はfalseを返し、何も変更しません
	RemoveMember(ctx context.Context, id uuid.UUID, userID string) (bool, error)

	// AddAdmin/RemoveAdmin はadminIdsのみを変更します
	AddAdmin(ctx context.Context, id uuid.UUID, userID string) error
	RemoveAdmin(ctx context.Context, id uuid.UUID, userID string) error
}
