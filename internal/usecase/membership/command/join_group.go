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

// JoinGroupInput は直接参加の入力を定義します
type JoinGroupInput struct {
	GroupID uuid.UUID
	UserID  string
}

// JoinGroupOutput は直接参加の出力を定義します
type JoinGroupOutput struct {
	Group *entity.Group
}

// JoinGroupCommand はグループへの直接参加コマンドです
// 公開/非公開の判定は呼び出し側の責務で、参加リクエストの承認や公開グループへの参加から使われます
type JoinGroupCommand struct {
	groupRepo repository.GroupRepository
	audit     service.AuditService
}

// NewJoinGroupCommand は新しいJoinGroupCommandを作成します
func NewJoinGroupCommand(groupRepo repository.GroupRepository, audit service.AuditService) *JoinGroupCommand {
	return &JoinGroupCommand{
		groupRepo: groupRepo,
		audit:     audit,
	}
}

// Execute は直接参加を実行します
func (c *JoinGroupCommand) Execute(ctx context.Context, input JoinGroupInput) (*JoinGroupOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 既存メンバーでないことを確認
	if err := group.CanJoin(input.UserID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 3. memberIdsへの追加とmemberCountの加算をアトミックに実行
	added, err := c.groupRepo.AddMember(ctx, group.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !added {
		// 読み込み後に別経路で参加済みになった
		return nil, apperror.NewAlreadyMemberError()
	}
	group.AddMember(input.UserID)

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.UserID,
		Action:       entity.AuditActionMemberJoin,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		SubjectID:    input.UserID,
	})
	logger.Info(ctx, "member joined group", "group_id", group.ID.String(), "member_id", input.UserID)

	return &JoinGroupOutput{Group: group}, nil
}
