package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

var (
	ErrJoinRequestNotPending = errors.New("join request is not pending")
)

// JoinRequest は非公開グループへの参加リクエストエンティティ
// 申請者の表示名・メール・写真は送信時点のスナップショット
type JoinRequest struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	UserID          string
	UserEmail       string
	UserDisplayName string
	UserPhotoURL    *string
	Message         *string
	Status          valueobject.JoinRequestStatus
	ResolvedBy      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewJoinRequest は保留中の参加リクエストを作成します
func NewJoinRequest(groupID uuid.UUID, requester *UserProfile, message *string) *JoinRequest {
	now := time.Now()
	return &JoinRequest{
		ID:              uuid.New(),
		GroupID:         groupID,
		UserID:          requester.UserID,
		UserEmail:       requester.Email,
		UserDisplayName: requester.DisplayName,
		UserPhotoURL:    requester.PhotoURL,
		Message:         message,
		Status:          valueobject.JoinRequestStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ReconstructJoinRequest は永続化データから参加リクエストを復元します
func ReconstructJoinRequest(
	id uuid.UUID,
	groupID uuid.UUID,
	userID string,
	userEmail string,
	userDisplayName string,
	userPhotoURL *string,
	message *string,
	status valueobject.JoinRequestStatus,
	resolvedBy *string,
	createdAt time.Time,
	updatedAt time.Time,
) *JoinRequest {
	return &JoinRequest{
		ID:              id,
		GroupID:         groupID,
		UserID:          userID,
		UserEmail:       userEmail,
		UserDisplayName: userDisplayName,
		UserPhotoURL:    userPhotoURL,
		Message:         message,
		Status:          status,
		ResolvedBy:      resolvedBy,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// IsPending は保留中かを判定します
func (r *JoinRequest) IsPending() bool {
	return r.Status.IsPending()
}

// IsForGroup は指定グループのリクエストかを判定します
func (r *JoinRequest) IsForGroup(groupID uuid.UUID) bool {
	return r.GroupID == groupID
}

// Approve はリクエストを承認します
func (r *JoinRequest) Approve(adminID string) error {
	return r.resolve(valueobject.JoinRequestStatusApproved, adminID)
}

// Reject はリクエストを却下します
func (r *JoinRequest) Reject(adminID string) error {
	return r.resolve(valueobject.JoinRequestStatusRejected, adminID)
}

func (r *JoinRequest) resolve(status valueobject.JoinRequestStatus, adminID string) error {
	if !r.Status.IsPending() {
		return ErrJoinRequestNotPending
	}
	r.Status = status
	r.ResolvedBy = &adminID
	r.UpdatedAt = time.Now()
	return nil
}
