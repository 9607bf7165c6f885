package query

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
)

// ListMyGroupsInput は所属グループ一覧取得の入力を定義します
type ListMyGroupsInput struct {
	UserID string
}

// ListMyGroupsOutput は所属グループ一覧取得の出力を定義します
type ListMyGroupsOutput struct {
	Groups []*entity.Group
}

// ListMyGroupsQuery は所属グループ一覧取得クエリです
type ListMyGroupsQuery struct {
	groupRepo repository.GroupRepository
}

// NewListMyGroupsQuery は新しいListMyGroupsQueryを作成します
func NewListMyGroupsQuery(groupRepo repository.GroupRepository) *ListMyGroupsQuery {
	return &ListMyGroupsQuery{groupRepo: groupRepo}
}

// Execute は所属グループ一覧取得を実行します
func (q *ListMyGroupsQuery) Execute(ctx context.Context, input ListMyGroupsInput) (*ListMyGroupsOutput, error) {
	groups, err := q.groupRepo.FindByMemberID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*entity.Group{}
	}

	return &ListMyGroupsOutput{Groups: groups}, nil
}
