package command

import (
	"context"
	"errors"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// UpdateProfileInput はプロファイル更新の入力を定義します
type UpdateProfileInput struct {
	UserID      string
	Email       string
	DisplayName *string
	PhotoURL    *string
}

// UpdateProfileOutput はプロファイル更新の出力を定義します
type UpdateProfileOutput struct {
	Profile *entity.UserProfile
}

// UpdateProfileCommand はプロファイル更新コマンドです
// 既存の参加リクエストに保存された表示名のスナップショットは更新しません
type UpdateProfileCommand struct {
	profileRepo repository.UserProfileRepository
	profiles    service.ProfileResolver
}

// NewUpdateProfileCommand は新しいUpdateProfileCommandを作成します
func NewUpdateProfileCommand(
	profileRepo repository.UserProfileRepository,
	profiles service.ProfileResolver,
) *UpdateProfileCommand {
	return &UpdateProfileCommand{
		profileRepo: profileRepo,
		profiles:    profiles,
	}
}

// Execute はプロファイル更新を実行します
func (c *UpdateProfileCommand) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	// 1. 既存プロファイルを取得（なければ作成）
	profile, err := c.profiles.GetOrCreate(ctx, &entity.UserProfile{
		UserID: input.UserID,
		Email:  input.Email,
	})
	if err != nil {
		return nil, err
	}

	// 2. フィールドを更新
	if err := profile.Update(input.DisplayName, input.PhotoURL); err != nil {
		if errors.Is(err, entity.ErrDisplayNameEmpty) || errors.Is(err, entity.ErrDisplayNameTooLong) {
			return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "displayName", Message: err.Error()}})
		}
		return nil, err
	}

	// 3. 保存してキャッシュを破棄
	if err := c.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	c.profiles.Forget(ctx, profile.UserID)

	logger.Info(ctx, "user profile updated")

	return &UpdateProfileOutput{Profile: profile}, nil
}
