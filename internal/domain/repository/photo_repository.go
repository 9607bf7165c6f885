package repository

import (
	"context"

	"github.com/google/uuid"
)

// PhotoRepository はグループ配下の写真レコードを扱います
// 写真のアップロード自体は別サービスが担当し、ここではグループ削除時の連鎖削除のみを扱います
type PhotoRepository interface {
	DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error)
}

// CommentRepository はグループ配下の写真コメントを扱います
type CommentRepository interface {
	DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error)
}
