package command

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// JoinRequestMessageMaxLength は参加リクエストのメッセージ最大長
const JoinRequestMessageMaxLength = 500

// Requester は認証済みユーザーの情報（IdPのクレーム由来）を表します
type Requester struct {
	UserID      string
	DisplayName string
	Email       string
	PhotoURL    *string
}

// SubmitJoinRequestInput は参加リクエスト送信の入力を定義します
type SubmitJoinRequestInput struct {
	GroupID   uuid.UUID
	Requester Requester
	Message   *string
}

// SubmitJoinRequestOutput は参加リクエスト送信の出力を定義します
type SubmitJoinRequestOutput struct {
	JoinRequest *entity.JoinRequest
}

// SubmitJoinRequestCommand は参加リクエスト送信コマンドです
type SubmitJoinRequestCommand struct {
	groupRepo       repository.GroupRepository
	joinRequestRepo repository.JoinRequestRepository
	profiles        service.ProfileResolver
	audit           service.AuditService
}

// NewSubmitJoinRequestCommand は新しいSubmitJoinRequestCommandを作成します
func NewSubmitJoinRequestCommand(
	groupRepo repository.GroupRepository,
	joinRequestRepo repository.JoinRequestRepository,
	profiles service.ProfileResolver,
	audit service.AuditService,
) *SubmitJoinRequestCommand {
	return &SubmitJoinRequestCommand{
		groupRepo:       groupRepo,
		joinRequestRepo: joinRequestRepo,
		profiles:        profiles,
		audit:           audit,
	}
}

// Execute は参加リクエスト送信を実行します
func (c *SubmitJoinRequestCommand) Execute(ctx context.Context, input SubmitJoinRequestInput) (*SubmitJoinRequestOutput, error) {
	// 1. メッセージのバリデーション
	message, err := normalizeMessage(input.Message)
	if err != nil {
		return nil, err
	}

	// 2. グループの存在確認
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 3. 参加リクエストを受け付けるグループか、未参加かを確認
	if err := group.CanRequestToJoin(input.Requester.UserID); err != nil {
		return nil, membership.TranslateError(err)
	}

	// 4. 保留中のリクエストの重複確認
	existing, err := c.joinRequestRepo.FindPendingByGroupAndUser(ctx, group.ID, input.Requester.UserID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicatePendingRequestError()
	}

	// 5. 申請者のプロファイルをスナップショット（失敗してもクレームの値で続行）
	claimed := entity.NewUserProfile(
		input.Requester.UserID,
		input.Requester.DisplayName,
		input.Requester.Email,
		input.Requester.PhotoURL,
	)
	profile, err := c.profiles.GetOrCreate(ctx, claimed)
	if err != nil {
		logger.WithError(ctx, err).Warn("failed to resolve requester profile, using token claims",
			"user_id", input.Requester.UserID)
		profile = claimed
	}

	// 6. 保存（同時送信は一意制約でCONFLICTになる）
	request := entity.NewJoinRequest(group.ID, profile, message)
	if err := c.joinRequestRepo.Create(ctx, request); err != nil {
		if apperror.Is(err, apperror.CodeConflict) {
			return nil, apperror.NewDuplicatePendingRequestError()
		}
		return nil, err
	}

	c.audit.Log(ctx, service.AuditEntry{
		ActorID:      input.Requester.UserID,
		Action:       entity.AuditActionJoinRequestSubmit,
		ResourceType: entity.AuditResourceJoinRequest,
		ResourceID:   request.ID,
		GroupID:      group.ID,
		SubjectID:    input.Requester.UserID,
	})
	logger.Info(ctx, "join request submitted", "group_id", group.ID.String(), "request_id", request.ID.String())

	return &SubmitJoinRequestOutput{JoinRequest: request}, nil
}

// normalizeMessage は空白のみのメッセージをnilにし、長さを検証します
func normalizeMessage(message *string) (*string, error) {
	if message == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*message)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > JoinRequestMessageMaxLength {
		return nil, apperror.NewValidationError("message is too long", []apperror.FieldError{
			{Field: "message", Message: "must be at most 500 characters"},
		})
	}
	return &trimmed, nil
}
