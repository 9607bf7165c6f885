package command

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// JoinGroupByCodeInput は参加コードによる参加の入力を定義します
type JoinGroupByCodeInput struct {
	Code      string
	Requester Requester
	Message   *string
}

// JoinGroupByCodeOutput は参加コードによる参加の出力を定義します
// 公開グループの場合はJoined=true、参加リクエストを送信した場合はJoinRequestが設定されます
type JoinGroupByCodeOutput struct {
	Group       *entity.Group
	Joined      bool
	JoinRequest *entity.JoinRequest
}

// JoinGroupByCodeCommand は参加コードからグループに参加するコマンドです
//   - 公開グループ: 直接参加
//   - 非公開かつ参加リクエスト可: 参加リクエストを送信
//   - 非公開かつ参加リクエスト不可: 招待が必要
type JoinGroupByCodeCommand struct {
	groupRepo         repository.GroupRepository
	joinGroup         *JoinGroupCommand
	submitJoinRequest *SubmitJoinRequestCommand
}

// NewJoinGroupByCodeCommand は新しいJoinGroupByCodeCommandを作成します
func NewJoinGroupByCodeCommand(
	groupRepo repository.GroupRepository,
	joinGroup *JoinGroupCommand,
	submitJoinRequest *SubmitJoinRequestCommand,
) *JoinGroupByCodeCommand {
	return &JoinGroupByCodeCommand{
		groupRepo:         groupRepo,
		joinGroup:         joinGroup,
		submitJoinRequest: submitJoinRequest,
	}
}

// Execute は参加コードによる参加を実行します
func (c *JoinGroupByCodeCommand) Execute(ctx context.Context, input JoinGroupByCodeInput) (*JoinGroupByCodeOutput, error) {
	// 1. コードの正規化（大文字小文字を区別しない）
	code, err := valueobject.NewGroupCode(input.Code)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "code", Message: err.Error()}})
	}

	// 2. グループの検索
	group, err := c.groupRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if group.IsMember(input.Requester.UserID) {
		return nil, apperror.NewAlreadyMemberError()
	}

	// 3. 公開範囲に応じて分岐
	switch {
	case !group.IsPrivate:
		out, err := c.joinGroup.Execute(ctx, JoinGroupInput{GroupID: group.ID, UserID: input.Requester.UserID})
		if err != nil {
			return nil, err
		}
		return &JoinGroupByCodeOutput{Group: out.Group, Joined: true}, nil

	case group.AcceptsJoinRequests():
		out, err := c.submitJoinRequest.Execute(ctx, SubmitJoinRequestInput{
			GroupID:   group.ID,
			Requester: input.Requester,
			Message:   input.Message,
		})
		if err != nil {
			return nil, err
		}
		return &JoinGroupByCodeOutput{Group: group, JoinRequest: out.JoinRequest}, nil

	default:
		return nil, apperror.NewInvitationRequiredError()
	}
}
