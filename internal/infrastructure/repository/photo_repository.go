package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
)

// PhotoRepository は写真メタデータのリポジトリ実装です
// 写真のアップロード自体は別サービスが担い、ここではグループ削除時の後始末のみ行います
type PhotoRepository struct {
	*database.BaseRepository
}

// NewPhotoRepository は新しいPhotoRepositoryを作成します
func NewPhotoRepository(txManager *database.TxManager) *PhotoRepository {
	return &PhotoRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// DeleteByGroupID はグループの写真を削除し削除件数を返します
func (r *PhotoRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	tag, err := r.Querier(ctx).Exec(ctx, `DELETE FROM photos WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, r.HandleError(err, nil)
	}
	return tag.RowsAffected(), nil
}

// CommentRepository は写真コメントのリポジトリ実装です
type CommentRepository struct {
	*database.BaseRepository
}

// NewCommentRepository は新しいCommentRepositoryを作成します
func NewCommentRepository(txManager *database.TxManager) *CommentRepository {
	return &CommentRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// DeleteByGroupID はグループの写真に付いたコメントを削除します
func (r *CommentRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	tag, err := r.Querier(ctx).Exec(ctx, `DELETE FROM comments WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, r.HandleError(err, nil)
	}
	return tag.RowsAffected(), nil
}

// インターフェースの実装を保証
var (
	_ repository.PhotoRepository   = (*PhotoRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)
