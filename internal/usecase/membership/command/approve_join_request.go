package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// ApproveJoinRequestInput は参加リクエスト承認の入力を定義します
type ApproveJoinRequestInput struct {
	GroupID   uuid.UUID
	RequestID uuid.UUID
	ActorID   string
}

// ApproveJoinRequestOutput は参加リクエスト承認の出力を定義します
type ApproveJoinRequestOutput struct {
	JoinRequest *entity.JoinRequest
	// AlreadyMember は承認前に別経路で参加済みだった場合にtrue
	AlreadyMember bool
}

// ApproveJoinRequestCommand は参加リクエスト承認コマンドです
type ApproveJoinRequestCommand struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
	txManager       repository.TransactionManager
	audit           service.AuditService
}

// NewApproveJoinRequestCommand は新しいApproveJoinRequestCommandを作成します
func NewApproveJoinRequestCommand(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
	txManager repository.TransactionManager,
	audit service.AuditService,
) *ApproveJoinRequestCommand {
	return &ApproveJoinRequestCommand{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
		txManager:       txManager,
		audit:           audit,
	}
}

// Execute は参加リクエスト承認を実行します
func (c *ApproveJoinRequestCommand) Execute(ctx context.Context, input ApproveJoinRequestInput) (*ApproveJoinRequestOutput, error) {
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

	// 3. 状態遷移（pending -> approved）
	if err := request.Approve(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 4. 保留中の場合のみ承認済みにし、その後で未参加ならメンバーに追加
	// 並行して却下されていればJOIN_REQUEST_NOT_PENDINGとなりメンバーは変化しない
	alreadyMember := group.IsMember(request.UserID)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.joinRequestRepo.UpdateStatus(ctx, request); err != nil {
			return err
		}
		if alreadyMember {
			return nil
		}
		added, err := c.groupRepo.AddMember(ctx, group.ID, request.UserID)
		if err != nil {
			return err
		}
		alreadyMember = !added
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       entity.AuditActionJoinRequestApprove,
		ResourceType: entity.AuditResourceJoinRequest,
		ResourceID:   request.ID,
		GroupID:      group.ID,
		SubjectID:    request.UserID,
		Details:      map[string]interface{}{"alreadyMember": alreadyMember},
	})
	logger.Info(ctx, "join request approved",
		"group_id", group.ID.String(),
		"request_id", request.ID.String(),
		"already_member", alreadyMember,
	)

	return &ApproveJoinRequestOutput{JoinRequest: request, AlreadyMember: alreadyMember}, nil
}
