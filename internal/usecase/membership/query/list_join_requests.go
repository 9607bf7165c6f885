package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
)

// PendingJoinRequestLimit は保留中リクエスト一覧の最大件数
const PendingJoinRequestLimit = 50

// ListJoinRequestsInput は参加リクエスト一覧取得の入力を定義します
type ListJoinRequestsInput struct {
	GroupID uuid.UUID
	ActorID string
}

// ListJoinRequestsOutput は参加リクエスト一覧取得の出力を定義します
type ListJoinRequestsOutput struct {
	JoinRequests []*entity.JoinRequest
}

// ListJoinRequestsQuery は保留中の参加リクエスト一覧取得クエリです（管理者のみ、新しい順）
type ListJoinRequestsQuery struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
}

// NewListJoinRequestsQuery は新しいListJoinRequestsQueryを作成します
func NewListJoinRequestsQuery(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
) *ListJoinRequestsQuery {
	return &ListJoinRequestsQuery{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
	}
}

// Execute は参加リクエスト一覧取得を実行します
func (q *ListJoinRequestsQuery) Execute(ctx context.Context, input ListJoinRequestsInput) (*ListJoinRequestsOutput, error) {
	group, err := q.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if err := group.CanManage(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}

	requests, err := q.joinRequestRepo.ListPendingByGroupID(ctx, group.ID, PendingJoinRequestLimit)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*entity.JoinRequest{}
	}

	return &ListJoinRequestsOutput{JoinRequests: requests}, nil
}
