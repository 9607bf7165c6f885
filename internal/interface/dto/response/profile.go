package response

import (
	"time"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// ProfileResponse はプロファイルレスポンスです
type ProfileResponse struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	PhotoURL    *string   `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToProfileResponse はエンティティからレスポンスに変換します
func ToProfileResponse(p *entity.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
