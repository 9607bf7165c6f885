package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

const groupColumns = `id, name, code, is_private, allow_join_requests, creator_id,
	admin_ids, member_ids, member_count, photo_count, created_at, updated_at`

// GroupRepository はグループリポジトリの実装です
// メンバー・管理者の追加削除は配列操作とカウント更新を1つのUPDATE文で行います
type GroupRepository struct {
	*database.BaseRepository
}

// NewGroupRepository は新しいGroupRepositoryを作成します
func NewGroupRepository(txManager *database.TxManager) *GroupRepository {
	return &GroupRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はグループを作成します
// コードが既に使われている場合はCONFLICTを返します
func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO groups (`+groupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		group.ID,
		group.Name.Value(),
		group.Code.Value(),
		group.IsPrivate,
		group.AllowJoinRequests,
		group.CreatorID,
		group.AdminIDs,
		group.MemberIDs,
		group.MemberCount,
		group.PhotoCount,
		group.CreatedAt,
		group.UpdatedAt,
	)
	return r.HandleError(err, nil)
}

// FindByID はIDでグループを検索します
func (r *GroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	group, err := scanGroup(row)
	if err != nil {
		return nil, r.HandleError(err, apperror.NewGroupNotFoundError)
	}
	return group, nil
}

// UpdateSettings は指定されたフィールドのみ更新します
func (r *GroupRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.GroupSettings) error {
	var name *string
	if settings.Name != nil {
		v := settings.Name.Value()
		name = &v
	}

	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE groups SET
			name = COALESCE($2, name),
			is_private = COALESCE($3, is_private),
			allow_join_requests = COALESCE($4, allow_join_requests),
			updated_at = now()
		WHERE id = $1`,
		id, name, settings.IsPrivate, settings.AllowJoinRequests,
	)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewGroupNotFoundError()
	}
	return nil
}

// Delete はグループを物理削除します
func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewGroupNotFoundError()
	}
	return nil
}

// FindByCode は参加コードでグループを検索します
func (r *GroupRepository) FindByCode(ctx context.Context, code valueobject.GroupCode) (*entity.Group, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE code = $1`, code.Value())
	group, err := scanGroup(row)
	if err != nil {
		return nil, r.HandleError(err, apperror.NewGroupNotFoundError)
	}
	return group, nil
}

// FindByMemberID はユーザーが所属するグループを新しい順に返します
func (r *GroupRepository) FindByMemberID(ctx context.Context, userID string) ([]*entity.Group, error) {
	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT `+groupColumns+` FROM groups
		WHERE member_ids @> ARRAY[$1::text]
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, r.HandleError(err, nil)
	}
	defer rows.Close()

	groups := make([]*entity.Group, 0)
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// ExistsByCode は参加コードが使用済みかを確認します
func (r *GroupRepository) ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error) {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE code = $1)`, code.Value()).Scan(&exists)
	if err != nil {
		return false, r.HandleError(err, nil)
	}
	return exists, nil
}

// AddMember はメンバーを追加しmember_countを加算します
// 既にメンバーの場合はfalseを返します
func (r *GroupRepository) AddMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE groups SET
			member_ids = array_append(member_ids, $2::text),
			member_count = member_count + 1,
			updated_at = now()
		WHERE id = $1 AND NOT ($2::text = ANY(member_ids))`,
		id, userID,
	)
	if err != nil {
		return false, r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

// RemoveMember はメンバーと管理者の両方から削除しmember_countを減算します
// メンバーでない場合はfalseを返します
func (r *GroupRepository) RemoveMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE groups SET
			member_ids = array_remove(member_ids, $2::text),
			admin_ids = array_remove(admin_ids, $2::text),
			member_count = member_count - 1,
			updated_at = now()
		WHERE id = $1 AND $2::text = ANY(member_ids) AND creator_id <> $2::text`,
		id, userID,
	)
	if err != nil {
		return false, r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

// AddAdmin はメンバーを管理者に追加します（既に管理者なら何もしない）
func (r *GroupRepository) AddAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE groups SET
			admin_ids = array_append(admin_ids, $2::text),
			updated_at = now()
		WHERE id = $1 AND $2::text = ANY(member_ids) AND NOT ($2::text = ANY(admin_ids))`,
		id, userID,
	)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	group, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return apperror.NewNotMemberError()
	}
	return nil
}

// RemoveAdmin は管理者権限を剥奪します（作成者は対象外）
func (r *GroupRepository) RemoveAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE groups SET
			admin_ids = array_remove(admin_ids, $2::text),
			updated_at = now()
		WHERE id = $1 AND creator_id <> $2::text`,
		id, userID,
	)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if err := r.ensureExists(ctx, id); err != nil {
		return err
	}
	return apperror.NewCannotDemoteCreatorError()
}

func (r *GroupRepository) ensureExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return r.HandleError(err, nil)
	}
	if !exists {
		return apperror.NewGroupNotFoundError()
	}
	return nil
}

// scanGroup は1行をentity.Groupに変換します
func scanGroup(row pgx.Row) (*entity.Group, error) {
	var (
		g                 entity.Group
		name, code        string
		adminIDs, members []string
	)
	err := row.Scan(
		&g.ID,
		&name,
		&code,
		&g.IsPrivate,
		&g.AllowJoinRequests,
		&g.CreatorID,
		&adminIDs,
		&members,
		&g.MemberCount,
		&g.PhotoCount,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entity.ReconstructGroup(
		g.ID,
		valueobject.ReconstructGroupName(name),
		valueobject.ReconstructGroupCode(code),
		g.IsPrivate,
		g.AllowJoinRequests,
		g.CreatorID,
		adminIDs,
		members,
		g.MemberCount,
		g.PhotoCount,
		g.CreatedAt,
		g.UpdatedAt,
	), nil
}

// インターフェースの実装を保証
var _ repository.GroupRepository = (*GroupRepository)(nil)
