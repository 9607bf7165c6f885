package query

import (
	"context"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
)

// GetProfileInput はプロファイル取得の入力を定義します
// DisplayName/Email/PhotoURLはIdPトークンのクレームで、初回アクセス時のプロファイル作成に使います
type GetProfileInput struct {
	UserID      string
	DisplayName string
	Email       string
	PhotoURL    *string
}

// GetProfileOutput はプロファイル取得の出力を定義します
type GetProfileOutput struct {
	Profile *entity.UserProfile
}

// GetProfileQuery はプロファイル取得クエリです
type GetProfileQuery struct {
	profiles service.ProfileResolver
}

// NewGetProfileQuery は新しいGetProfileQueryを作成します
func NewGetProfileQuery(profiles service.ProfileResolver) *GetProfileQuery {
	return &GetProfileQuery{profiles: profiles}
}

// Execute はプロファイル取得を実行します（無ければ作成）
func (q *GetProfileQuery) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := q.profiles.GetOrCreate(ctx, &entity.UserProfile{
		UserID:      input.UserID,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		PhotoURL:    input.PhotoURL,
	})
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{Profile: profile}, nil
}
