package response

import (
	"time"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// JoinRequestResponse は参加リクエストレスポンスです
type JoinRequestResponse struct {
	ID              string    `json:"id"`
	GroupID         string    `json:"groupId"`
	UserID          string    `json:"userId"`
	UserEmail       string    `json:"userEmail"`
	UserDisplayName string    `json:"userDisplayName"`
	UserPhotoURL    *string   `json:"userPhotoUrl"`
	Message         *string   `json:"message"`
	Status          string    `json:"status"`
	ResolvedBy      *string   `json:"resolvedBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ApproveJoinRequestResponse は承認結果です
type ApproveJoinRequestResponse struct {
	JoinRequest   JoinRequestResponse `json:"joinRequest"`
	AlreadyMember bool                `json:"alreadyMember"`
}

// CountResponse は件数レスポンスです
type CountResponse struct {
	Count int `json:"count"`
}

// ToJoinRequestResponse はエンティティからレスポンスに変換します
func ToJoinRequestResponse(r *entity.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:              r.ID.String(),
		GroupID:         r.GroupID.String(),
		UserID:          r.UserID,
		UserEmail:       r.UserEmail,
		UserDisplayName: r.UserDisplayName,
		UserPhotoURL:    r.UserPhotoURL,
		Message:         r.Message,
		Status:          r.Status.String(),
		ResolvedBy:      r.ResolvedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToJoinRequestListResponse は参加リクエスト一覧をレスポンスに変換します
func ToJoinRequestListResponse(requests []*entity.JoinRequest) []JoinRequestResponse {
	result := make([]JoinRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, ToJoinRequestResponse(r))
	}
	return result
}
