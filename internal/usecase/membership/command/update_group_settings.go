package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// UpdateGroupSettingsInput はグループ設定更新の入力を定義します
// nilのフィールドは変更されません
type UpdateGroupSettingsInput struct {
	GroupID           uuid.UUID
	ActorID           string
	Name              *string
	IsPrivate         *bool
	AllowJoinRequests *bool
}

// UpdateGroupSettingsOutput はグループ設定更新の出力を定義します
type UpdateGroupSettingsOutput struct {
	Group *entity.Group
}

// UpdateGroupSettingsCommand はグループ設定更新コマンドです
type UpdateGroupSettingsCommand struct {
	groupRepo repository.GroupRepository
	audit     service.AuditService
}

// NewUpdateGroupSettingsCommand は新しいUpdateGroupSettingsCommandを作成します
func NewUpdateGroupSettingsCommand(groupRepo repository.GroupRepository, audit service.AuditService) *UpdateGroupSettingsCommand {
	return &UpdateGroupSettingsCommand{
		groupRepo: groupRepo,
		audit:     audit,
	}
}

// Execute はグループ設定更新を実行します
func (c *UpdateGroupSettingsCommand) Execute(ctx context.Context, input UpdateGroupSettingsInput) (*UpdateGroupSettingsOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 管理者権限の確認
	if err := group.CanManage(input.ActorID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 3. 指定されたフィールドのみ検証
	settings := entity.GroupSettings{
		IsPrivate:         input.IsPrivate,
		AllowJoinRequests: input.AllowJoinRequests,
	}
	if input.Name != nil {
		name, err := valueobject.NewGroupName(*input.Name)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "name", Message: err.Error()}})
		}
		settings.Name = &name
	}

	if settings.IsEmpty() {
		return &UpdateGroupSettingsOutput{Group: group}, nil
	}

	// 4. 部分更新
	if err := c.groupRepo.UpdateSettings(ctx, group.ID, settings); err != nil {
		return nil, err
	}
	group.ApplySettings(settings)

	details := map[string]interface{}{}
	if settings.Name != nil {
		details["name"] = settings.Name.Value()
	}
	if settings.IsPrivate != nil {
		details["isPrivate"] = *settings.IsPrivate
	}
	if settings.AllowJoinRequests != nil {
		details["allowJoinRequests"] = *settings.AllowJoinRequests
	}
	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       entity.AuditActionGroupUpdate,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		Details:      details,
	})
	logger.Info(ctx, "group settings updated", "group_id", group.ID.String())

	return &UpdateGroupSettingsOutput{Group: group}, nil
}
