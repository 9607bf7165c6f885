package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// RejectJoinRequestInput は参加リクエスト却下の入力を定義します
type RejectJoinRequestInput struct {
	GroupID   uuid.UUID
	RequestID uuid.UUID
	ActorID   string
}

// RejectJoinRequestOutput は参加リクエスト却下の出力を定義します
type RejectJoinRequestOutput struct {
	JoinRequest *entity.JoinRequest
}

// RejectJoinRequestCommand は参加リクエスト却下コマンドです
// メンバーシップは変更しません
type RejectJoinRequestCommand struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
	audit           service.AuditService
}

// NewRejectJoinRequestCommand は新しいRejectJoinRequestCommandを作成します
func NewRejectJoinRequestCommand(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
	audit service.AuditService,
) *RejectJoinRequestCommand {
	return &RejectJoinRequestCommand{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
		audit:           audit,
	}
}

// Execute は参加リクエスト却下を実行します
func (c *RejectJoinRequestCommand) Execute(ctx context.Context, input RejectJoinRequestInput) (*RejectJoinRequestOutput, error) {
	// 1. グループと管理者権限の確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if err := group.CanManage(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 2. リクエストの取得
	request, err := findGroupJoinRequest(ctx, c.joinRequestRepo, group.ID, input.RequestID)
	if err != nil {
		return nil, err
	}

	// 3. 状態遷移（pending -> rejected）
	if err := request.Reject(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}
	if err := c.joinRequestRepo.UpdateStatus(ctx, request); err != nil {
		return nil, err
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       entity.AuditActionJoinRequestReject,
		ResourceType: entity.AuditResourceJoinRequest,
		ResourceID:   request.ID,
		GroupID:      group.ID,
		SubjectID:    request.UserID,
	})
	logger.Info(ctx, "join request rejected", "group_id", group.ID.String(), "request_id", request.ID.String())

	return &RejectJoinRequestOutput{JoinRequest: request}, nil
}

// findGroupJoinRequest は指定グループに属するリクエストを取得します
// 別グループのリクエストIDは存在しないものとして扱います
func findGroupJoinRequest(
	ctx context.Context,
	repo repository.JoinRequestRepository,
	groupID uuid.UUID,
	requestID uuid.UUID,
) (*entity.JoinRequest, error) {
	request, err := repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsForGroup(groupID) {
		return nil, apperror.NewJoinRequestNotFoundError()
	}
	return request, nil
}
