package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
)

// CountPendingJoinRequestsInput は保留中リクエスト数取得の入力を定義します
type CountPendingJoinRequestsInput struct {
	GroupID uuid.UUID
	ActorID string
}

// CountPendingJoinRequestsOutput は保留中リクエスト数取得の出力を定義します
type CountPendingJoinRequestsOutput struct {
	Count int
}

// CountPendingJoinRequestsQuery は保留中リクエスト数取得クエリです（管理者のみ）
type CountPendingJoinRequestsQuery struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
}

// NewCountPendingJoinRequestsQuery は新しいCountPendingJoinRequestsQueryを作成します
func NewCountPendingJoinRequestsQuery(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
) *CountPendingJoinRequestsQuery {
	return &CountPendingJoinRequestsQuery{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
	}
}

// Execute は保留中リクエスト数取得を実行します
func (q *CountPendingJoinRequestsQuery) Execute(ctx context.Context, input CountPendingJoinRequestsInput) (*CountPendingJoinRequestsOutput, error) {
	group, err := q.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if err := group.CanManage(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}

	count, err := q.joinRequestRepo.CountPendingByGroupID(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return &CountPendingJoinRequestsOutput{Count: count}, nil
}
