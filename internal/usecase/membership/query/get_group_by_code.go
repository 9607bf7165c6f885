package query

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// GetGroupByCodeInput は参加コードによるグループ検索の入力を定義します
type GetGroupByCodeInput struct {
	Code   string
	UserID string
}

// GetGroupByCodeOutput は参加コードによるグループ検索の出力を定義します
type GetGroupByCodeOutput struct {
	Group    *entity.Group
	IsMember bool
}

// GetGroupByCodeQuery は参加コードによるグループ検索クエリです
// コードは大文字に正規化してから検索します
type GetGroupByCodeQuery struct {
	groupRepo repository.GroupRepository
}

// NewGetGroupByCodeQuery は新しいGetGroupByCodeQueryを作成します
func NewGetGroupByCodeQuery(groupRepo repository.GroupRepository) *GetGroupByCodeQuery {
	return &GetGroupByCodeQuery{groupRepo: groupRepo}
}

// Execute はグループ検索を実行します
func (q *GetGroupByCodeQuery) Execute(ctx context.Context, input GetGroupByCodeInput) (*GetGroupByCodeOutput, error) {
	code, err := valueobject.NewGroupCode(input.Code)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "code", Message: err.Error()}})
	}

	group, err := q.groupRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &GetGroupByCodeOutput{Group: group, IsMember: group.IsMember(input.UserID)}, nil
}
