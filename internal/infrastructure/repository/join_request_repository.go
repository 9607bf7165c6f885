package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

const joinRequestColumns = `id, group_id, user_id, user_email, user_display_name, user_photo_url,
	message, status, resolved_by, created_at, updated_at`

// JoinRequestRepository は参加リクエストリポジトリの実装です
// 保留中リクエストの重複は部分一意インデックス (group_id, user_id) WHERE status = 'pending' で防ぎます
type JoinRequestRepository struct {
	*database.BaseRepository
}

// NewJoinRequestRepository は新しいJoinRequestRepositoryを作成します
func NewJoinRequestRepository(txManager *database.TxManager) *JoinRequestRepository {
	return &JoinRequestRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は参加リクエストを作成します
func (r *JoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO join_requests (`+joinRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		request.ID,
		request.GroupID,
		request.UserID,
		request.UserEmail,
		request.UserDisplayName,
		request.UserPhotoURL,
		request.Message,
		request.Status.String(),
		request.ResolvedBy,
		request.CreatedAt,
		request.UpdatedAt,
	)
	return r.HandleError(err, nil)
}

// FindByID はIDで参加リクエストを検索します
func (r *JoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+joinRequestColumns+` FROM join_requests WHERE id = $1`, id)
	request, err := scanJoinRequest(row)
	if err != nil {
		return nil, r.HandleError(err, apperror.NewJoinRequestNotFoundError)
	}
	return request, nil
}

// UpdateStatus は保留中のリクエストを解決済みにします
// 既に解決済みの場合はJOIN_REQUEST_NOT_PENDINGを返します
func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, request *entity.JoinRequest) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE join_requests SET status = $2, resolved_by = $3, updated_at = $4
		WHERE id = $1 AND status = 'pending'`,
		request.ID, request.Status.String(), request.ResolvedBy, request.UpdatedAt,
	)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.FindByID(ctx, request.ID); err != nil {
		return err
	}
	return apperror.NewJoinRequestNotPendingError()
}

// FindPendingByGroupAndUser はユーザーの保留中リクエストを検索します
func (r *JoinRequestRepository) FindPendingByGroupAndUser(ctx context.Context, groupID uuid.UUID, userID string) (*entity.JoinRequest, error) {
	row := r.Querier(ctx).QueryRow(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests
		WHERE group_id = $1 AND user_id = $2 AND status = 'pending'`,
		groupID, userID,
	)
	request, err := scanJoinRequest(row)
	if err != nil {
		return nil, r.HandleError(err, apperror.NewJoinRequestNotFoundError)
	}
	return request, nil
}

// ListPendingByGroupID は保留中リクエストを新しい順に返します
func (r *JoinRequestRepository) ListPendingByGroupID(ctx context.Context, groupID uuid.UUID, limit int) ([]*entity.JoinRequest, error) {
	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT `+joinRequestColumns+` FROM join_requests
		WHERE group_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT $2`,
		groupID, limit,
	)
	if err != nil {
		return nil, r.HandleError(err, nil)
	}
	defer rows.Close()

	requests := make([]*entity.JoinRequest, 0)
	for rows.Next() {
		request, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// CountPendingByGroupID は保留中リクエスト数を返します
func (r *JoinRequestRepository) CountPendingByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	var count int
	err := r.Querier(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM join_requests WHERE group_id = $1 AND status = 'pending'`,
		groupID,
	).Scan(&count)
	if err != nil {
		return 0, r.HandleError(err, nil)
	}
	return count, nil
}

// DeleteByGroupID はグループの全リクエストを削除します
func (r *JoinRequestRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error {
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM join_requests WHERE group_id = $1`, groupID)
	return r.HandleError(err, nil)
}

// DeleteResolvedBefore は指定日時より前に解決されたリクエストを削除します
func (r *JoinRequestRepository) DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Querier(ctx).Exec(ctx, `
		DELETE FROM join_requests WHERE status <> 'pending' AND updated_at < $1`,
		before,
	)
	if err != nil {
		return 0, r.HandleError(err, nil)
	}
	return tag.RowsAffected(), nil
}

func scanJoinRequest(row pgx.Row) (*entity.JoinRequest, error) {
	var (
		r      entity.JoinRequest
		status string
	)
	err := row.Scan(
		&r.ID,
		&r.GroupID,
		&r.UserID,
		&r.UserEmail,
		&r.UserDisplayName,
		&r.UserPhotoURL,
		&r.Message,
		&status,
		&r.ResolvedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = valueobject.JoinRequestStatus(status)
	return &r, nil
}

// インターフェースの実装を保証
var _ repository.JoinRequestRepository = (*JoinRequestRepository)(nil)
