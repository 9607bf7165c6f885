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

// RemoveMemberInput はメンバー削除の入力を定義します
type RemoveMemberInput struct {
	GroupID      uuid.UUID
	TargetUserID string
	ActorID      string
}

// RemoveMemberOutput はメンバー削除の出力を定義します
type RemoveMemberOutput struct {
	RemovedUserID string
}

// RemoveMemberCommand は管理者によるメンバー削除コマンドです
type RemoveMemberCommand struct {
	groupRepo repository.GroupRepository
	audit     service.AuditService
}

// NewRemoveMemberCommand は新しいRemoveMemberCommandを作成します
func NewRemoveMemberCommand(groupRepo repository.GroupRepository, audit service.AuditService) *RemoveMemberCommand {
	return &RemoveMemberCommand{
		groupRepo: groupRepo,
		audit:     audit,
	}
}

// Execute はメンバー削除を実行します
func (c *RemoveMemberCommand) Execute(ctx context.Context, input RemoveMemberInput) (*RemoveMemberOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 操作者が管理者であること、対象が作成者・自分自身でないことを確認
	if err := group.CanRemoveMember(input.ActorID, input.TargetUserID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 3. memberIds/adminIdsからの削除とmemberCountの減算をアトミックに実行
	removed, err := c.groupRepo.RemoveMember(ctx, group.ID, input.TargetUserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperror.NewNotMemberError()
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       entity.AuditActionMemberRemove,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		SubjectID:    input.TargetUserID,
	})
	logger.Info(ctx, "member removed from group",
		"group_id", group.ID.String(),
		"member_id", input.TargetUserID,
		"removed_by", input.ActorID,
	)

	return &RemoveMemberOutput{RemovedUserID: input.TargetUserID}, nil
}
