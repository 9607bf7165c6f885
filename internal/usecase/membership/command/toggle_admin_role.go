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

// ToggleAdminRoleInput は管理者権限変更の入力を定義します
type ToggleAdminRoleInput struct {
	GroupID      uuid.UUID
	TargetUserID string
	ActorID      string
	MakeAdmin    bool
}

// ToggleAdminRoleOutput は管理者権限変更の出力を定義します
type ToggleAdminRoleOutput struct {
	Group   *entity.Group
	Changed bool
}

// ToggleAdminRoleCommand は管理者権限の付与/剥奪コマンドです
// memberIdsは変更しません
type ToggleAdminRoleCommand struct {
	groupRepo repository.GroupRepository
	audit     service.AuditService
}

// NewToggleAdminRoleCommand は新しいToggleAdminRoleCommandを作成します
func NewToggleAdminRoleCommand(groupRepo repository.GroupRepository, audit service.AuditService) *ToggleAdminRoleCommand {
	return &ToggleAdminRoleCommand{
		groupRepo: groupRepo,
		audit:     audit,
	}
}

// Execute は管理者権限の変更を実行します
func (c *ToggleAdminRoleCommand) Execute(ctx context.Context, input ToggleAdminRoleInput) (*ToggleAdminRoleOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 権限チェック
	if err := group.CanSetAdmin(input.ActorID, input.TargetUserID, input.MakeAdmin); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 3. 既に目的の状態なら何もしない
	if group.IsAdmin(input.TargetUserID) == input.MakeAdmin {
		return &ToggleAdminRoleOutput{Group: group, Changed: false}, nil
	}

	// 4. adminIdsをアトミックに更新
	action := entity.AuditActionAdminGrant
	if input.MakeAdmin {
		err = c.groupRepo.AddAdmin(ctx, group.ID, input.TargetUserID)
		group.GrantAdmin(input.TargetUserID)
	} else {
		action = entity.AuditActionAdminRevoke
		err = c.groupRepo.RemoveAdmin(ctx, group.ID, input.TargetUserID)
		group.RevokeAdmin(input.TargetUserID)
	}
	if err != nil {
		return nil, err
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       action,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		SubjectID:    input.TargetUserID,
	})
	logger.Info(ctx, "admin role changed",
		"group_id", group.ID.String(),
		"member_id", input.TargetUserID,
		"make_admin", input.MakeAdmin,
	)

	return &ToggleAdminRoleOutput{Group: group, Changed: true}, nil
}
