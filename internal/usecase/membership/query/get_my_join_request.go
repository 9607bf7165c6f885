package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// GetMyJoinRequestInput は自分の保留中リクエスト取得の入力を定義します
type GetMyJoinRequestInput struct {
	GroupID uuid.UUID
	UserID  string
}

// GetMyJoinRequestOutput は自分の保留中リクエスト取得の出力を定義します
type GetMyJoinRequestOutput struct {
	JoinRequest *entity.JoinRequest
}

// GetMyJoinRequestQuery は自分の保留中の参加リクエストを取得するクエリです
type GetMyJoinRequestQuery struct {
	joinRequestRepo repository.JoinRequestRepository
}

// NewGetMyJoinRequestQuery は新しいGetMyJoinRequestQueryを作成します
func NewGetMyJoinRequestQuery(joinRequestRepo repository.JoinRequestRepository) *GetMyJoinRequestQuery {
	return &GetMyJoinRequestQuery{joinRequestRepo: joinRequestRepo}
}

// Execute は自分の保留中リクエスト取得を実行します
func (q *GetMyJoinRequestQuery) Execute(ctx context.Context, input GetMyJoinRequestInput) (*GetMyJoinRequestOutput, error) {
	request, err := q.joinRequestRepo.FindPendingByGroupAndUser(ctx, input.GroupID, input.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewJoinRequestNotFoundError()
		}
		return nil, err
	}

	return &GetMyJoinRequestOutput{JoinRequest: request}, nil
}
