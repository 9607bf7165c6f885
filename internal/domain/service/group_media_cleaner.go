package service

import (
	"context"

	"github.com/google/uuid"
)

// GroupMediaCleaner はグループに属する写真オブジェクトを削除します
type GroupMediaCleaner interface {
	DeleteGroupMedia(ctx context.Context, groupID uuid.UUID) (int, error)
}
