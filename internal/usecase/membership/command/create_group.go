package command

import (
	"context"
	"errors"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// CreateGroupInput はグループ作成の入力を定義します
type CreateGroupInput struct {
	Name              string
	IsPrivate         bool
	AllowJoinRequests bool
	CreatorID         string
}

// CreateGroupOutput はグループ作成の出力を定義します
type CreateGroupOutput struct {
	Group *entity.Group
}

// CreateGroupCommand はグループ作成コマンドです
type CreateGroupCommand struct {
	groupRepo repository.GroupRepository
	codeGen   *service.GroupCodeGenerator
	audit     service.AuditService
}

// NewCreateGroupCommand は新しいCreateGroupCommandを作成します
func NewCreateGroupCommand(
	groupRepo repository.GroupRepository,
	codeGen *service.GroupCodeGenerator,
	audit service.AuditService,
) *CreateGroupCommand {
	return &CreateGroupCommand{
		groupRepo: groupRepo,
		codeGen:   codeGen,
		audit:     audit,
	}
}

// Execute はグループ作成を実行します
func (c *CreateGroupCommand) Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error) {
	// 1. グループ名のバリデーション
	groupName, err := valueobject.NewGroupName(input.Name)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "name", Message: err.Error()}})
	}

	// 2. 参加コードを発行して保存
	// 生成後に他のリクエストが同じコードを保存した場合はCONFLICTとなるため再発行する
	// ストア確認と保存時の衝突は同じ試行上限を共有する
	maxAttempts := c.codeGen.MaxAttempts()
	remaining := maxAttempts
	for remaining > 0 {
		code, used, err := c.codeGen.GenerateWithin(ctx, remaining)
		remaining -= used
		if err != nil {
			if errors.Is(err, service.ErrCodeGenerationExhausted) {
				return nil, apperror.NewCodeGenerationExhaustedError(maxAttempts)
			}
			return nil, err
		}

		group := entity.NewGroup(groupName, code, input.IsPrivate, input.AllowJoinRequests, input.CreatorID)

		err = c.groupRepo.Create(ctx, group)
		if apperror.Is(err, apperror.CodeConflict) {
			logger.Warn(ctx, "group code collided on insert, retrying", "code", code.Value(), "remaining", remaining)
			continue
		}
		if err != nil {
			return nil, err
		}

		c.audit.Log(ctx, service.AuditEntry{
			ActorID:      input.CreatorID,
			Action:       entity.AuditActionGroupCreate,
			ResourceType: entity.AuditResourceGroup,
			ResourceID:   group.ID,
			GroupID:      group.ID,
			Details: map[string]interface{}{
				"name":      group.Name.Value(),
				"isPrivate": group.IsPrivate,
			},
		})
		logger.Info(ctx, "group created", "group_id", group.ID.String(), "code", code.Value())

		return &CreateGroupOutput{Group: group}, nil
	}

	return nil, apperror.NewCodeGenerationExhaustedError(maxAttempts)
}
