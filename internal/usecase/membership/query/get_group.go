package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// GetGroupInput はグループ取得の入力を定義します
type GetGroupInput struct {
	GroupID uuid.UUID
	UserID  string
}

// GetGroupOutput はグループ取得の出力を定義します
type GetGroupOutput struct {
	Group    *entity.Group
	IsMember bool
	MyRole   *valueobject.MemberRole
}

// GetGroupQuery はグループ取得クエリです
// 非公開グループはメンバーのみ取得できます
type GetGroupQuery struct {
	groupRepo repository.GroupRepository
}

// NewGetGroupQuery は新しいGetGroupQueryを作成します
func NewGetGroupQuery(groupRepo repository.GroupRepository) *GetGroupQuery {
	return &GetGroupQuery{groupRepo: groupRepo}
}

// Execute はグループ取得を実行します
func (q *GetGroupQuery) Execute(ctx context.Context, input GetGroupInput) (*GetGroupOutput, error) {
	group, err := q.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	if !group.CanBeViewedBy(input.UserID) {
		return nil, apperror.NewNotMemberError()
	}

	output := &GetGroupOutput{Group: group, IsMember: group.IsMember(input.UserID)}
	if output.IsMember {
		role := group.RoleOf(input.UserID)
		output.MyRole = &role
	}
	return output, nil
}
