package response

import (
	"time"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/query"
)

// GroupResponse はグループレスポンスです
type GroupResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	IsPrivate         bool      `json:"isPrivate"`
	AllowJoinRequests bool      `json:"allowJoinRequests"`
	CreatorID         string    `json:"creatorId"`
	AdminIDs          []string  `json:"adminIds"`
	MemberIDs         []string  `json:"memberIds"`
	MemberCount       int       `json:"memberCount"`
	PhotoCount        int       `json:"photoCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// GroupDetailResponse はリクエスト者から見たグループ詳細です
type GroupDetailResponse struct {
	Group    GroupResponse `json:"group"`
	IsMember bool          `json:"isMember"`
	MyRole   *string       `json:"myRole"`
}

// GroupPreviewResponse は参加コードで参照したグループの概要です
// 参加前のユーザーにはメンバー一覧を公開しません
type GroupPreviewResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	IsPrivate         bool   `json:"isPrivate"`
	AllowJoinRequests bool   `json:"allowJoinRequests"`
	MemberCount       int    `json:"memberCount"`
	IsMember          bool   `json:"isMember"`
}

// MemberResponse はメンバー情報レスポンスです
type MemberResponse struct {
	UserID      string  `json:"userId"`
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email,omitempty"`
	PhotoURL    *string `json:"photoUrl"`
	Role        string  `json:"role"`
}

// JoinGroupByCodeResponse は参加コードによる参加結果です
// 直接参加した場合はgroup、参加リクエストになった場合はjoinRequestが設定されます
type JoinGroupByCodeResponse struct {
	Joined      bool                 `json:"joined"`
	Group       *GroupResponse       `json:"group,omitempty"`
	JoinRequest *JoinRequestResponse `json:"joinRequest,omitempty"`
}

// ToggleAdminRoleResponse は管理者権限変更の結果です
type ToggleAdminRoleResponse struct {
	Group   GroupResponse `json:"group"`
	Changed bool          `json:"changed"`
}

// ToGroupResponse はエンティティからレスポンスに変換します
func ToGroupResponse(group *entity.Group) GroupResponse {
	return GroupResponse{
		ID:                group.ID.String(),
		Name:              group.Name.String(),
		Code:              group.Code.String(),
		IsPrivate:         group.IsPrivate,
		AllowJoinRequests: group.AllowJoinRequests,
		CreatorID:         group.CreatorID,
		AdminIDs:          nonNil(group.AdminIDs),
		MemberIDs:         nonNil(group.MemberIDs),
		MemberCount:       group.MemberCount,
		PhotoCount:        group.PhotoCount,
		CreatedAt:         group.CreatedAt,
		UpdatedAt:         group.UpdatedAt,
	}
}

// ToGroupListResponse はグループ一覧をレスポンスに変換します
func ToGroupListResponse(groups []*entity.Group) []GroupResponse {
	result := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, ToGroupResponse(g))
	}
	return result
}

// ToGroupDetailResponse はグループ詳細をレスポンスに変換します
func ToGroupDetailResponse(group *entity.Group, isMember bool, role *valueobject.MemberRole) GroupDetailResponse {
	resp := GroupDetailResponse{
		Group:    ToGroupResponse(group),
		IsMember: isMember,
	}
	if role != nil {
		r := role.String()
		resp.MyRole = &r
	}
	return resp
}

// ToGroupPreviewResponse はグループ概要をレスポンスに変換します
func ToGroupPreviewResponse(group *entity.Group, isMember bool) GroupPreviewResponse {
	return GroupPreviewResponse{
		ID:                group.ID.String(),
		Name:              group.Name.String(),
		IsPrivate:         group.IsPrivate,
		AllowJoinRequests: group.AllowJoinRequests,
		MemberCount:       group.MemberCount,
		IsMember:          isMember,
	}
}

// ToMemberListResponse はメンバー一覧をレスポンスに変換します
func ToMemberListResponse(members []query.MemberView) []MemberResponse {
	result := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, MemberResponse{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Email:       m.Email,
			PhotoURL:    m.PhotoURL,
			Role:        m.Role.String(),
		})
	}
	return result
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
