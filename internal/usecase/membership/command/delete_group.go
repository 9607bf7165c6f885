package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// DeleteGroupInput はグループ削除の入力を定義します
type DeleteGroupInput struct {
	GroupID uuid.UUID
	ActorID string
}

// DeleteGroupOutput はグループ削除の出力を定義します
type DeleteGroupOutput struct {
	DeletedGroupID uuid.UUID
	PhotosDeleted  int64
}

// DeleteGroupCommand はグループ削除コマンドです
// 子レコード（写真オブジェクト、参加リクエスト、コメント、写真）を先に削除し、最後にグループを削除します
type DeleteGroupCommand struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
	photoRepo       repository.PhotoRepository
	commentRepo     repository.CommentRepository
	mediaCleaner    service.GroupMediaCleaner
	txManager       repository.TransactionManager
	audit           service.AuditService
}

// NewDeleteGroupCommand は新しいDeleteGroupCommandを作成します
func NewDeleteGroupCommand(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
	photoRepo repository.PhotoRepository,
	commentRepo repository.CommentRepository,
	mediaCleaner service.GroupMediaCleaner,
	txManager repository.TransactionManager,
	audit service.AuditService,
) *DeleteGroupCommand {
	return &DeleteGroupCommand{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
		photoRepo:       photoRepo,
		commentRepo:     commentRepo,
		mediaCleaner:    mediaCleaner,
		txManager:       txManager,
		audit:           audit,
	}
}

// Execute はグループ削除を実行します
func (c *DeleteGroupCommand) Execute(ctx context.Context, input DeleteGroupInput) (*DeleteGroupOutput, error) {
	// 1. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 作成者のみ削除可能
	if err := group.CanDelete(input.ActorID); err != nil {
		return nil, apperror.NewPermissionDeniedError("only the group creator can delete the group")
	}

	// 3. 写真オブジェクトの削除（トランザクション外）
	objects, err := c.mediaCleaner.DeleteGroupMedia(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	// 4. 子レコード→グループの順で削除
	var photos int64
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.joinRequestRepo.DeleteByGroupID(ctx, group.ID); err != nil {
			return err
		}
		if _, err := c.commentRepo.DeleteByGroupID(ctx, group.ID); err != nil {
			return err
		}
		n, err := c.photoRepo.DeleteByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}
		photos = n
		return c.groupRepo.Delete(ctx, group.ID)
	})
	if err != nil {
		return nil, err
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.ActorID,
		Action:       entity.AuditActionGroupDelete,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   group.ID,
		GroupID:      group.ID,
		Details: map[string]interface{}{
			"photos":  photos,
			"objects": objects,
		},
	})
	logger.Info(ctx, "group deleted", "group_id", group.ID.String(), "photos", photos, "objects", objects)

	return &DeleteGroupOutput{DeletedGroupID: group.ID, PhotosDeleted: photos}, nil
}
