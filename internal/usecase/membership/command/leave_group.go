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

// LeaveGroupInput はグループ脱退の入力を定義します
type LeaveGroupInput struct {
	GroupID uuid.UUID
	UserID  string
}

// LeaveGroupOutput はグループ脱退の出力を定義します
type LeaveGroupOutput struct {
	LeftGroupID uuid.UUID
}

// LeaveGroupCommand はグループ脱退コマンドです
type LeaveGroupCommand struct {
	groupRepo repository.GroupRepository
	audit     service.AuditService
}

// NewLeaveGroupCommand は新しいLeaveGroupCommandを作成します
func NewLeaveGroupCommand(groupRepo repository.GroupRepository, audit service.AuditService) *LeaveGroupCommand {
	return &LeaveGroupCommand{
		groupRepo: groupRepo,
		audit:     audit,
	}
}

// Execute はグループ脱退を実行します
func (c *LeaveGroupCommand) Execute(ctx context.Context, input LeaveGroupInput) (*LeaveGroupOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 脱退可否の確認（非メンバー、唯一のメンバー、最後の管理者、作成者）
	if err := group.CanLeave(input.UserID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 3. memberIds/adminIdsからの削除とmemberCountの減算をアトミックに実行
	removed, err := c.groupRepo.RemoveMember(ctx, group.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperror.NewNotMemberError()
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.UserID,
		Action:       entity.AuditActionMemberLeave,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		SubjectID:    input.UserID,
	})
	logger.Info(ctx, "member left group", "group_id", group.ID.String(), "member_id", input.UserID)

	return &LeaveGroupOutput{LeftGroupID: group.ID}, nil
}
