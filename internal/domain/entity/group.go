package entity

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

var (
	ErrAlreadyMember          = errors.New("user is already a member")
	ErrNotMember              = errors.New("user is not a member")
	ErrNotAdmin               = errors.New("user is not an admin")
	ErrCannotRemoveCreator    = errors.New("creator cannot be removed")
	ErrCannotDemoteCreator    = errors.New("creator cannot be demoted")
	ErrUseLeaveInstead        = errors.New("self removal must use leave")
	ErrCannotChangeOwnRole    = errors.New("cannot change own role")
	ErrLastAdminCannotLeave   = errors.New("last admin cannot leave")
	ErrSoleMemberMustDelete   = errors.New("sole member must delete the group")
	ErrCreatorCannotLeave     = errors.New("creator cannot leave")
	ErrJoinRequestsNotAllowed = errors.New("group does not accept join requests")
)

// Group はグループエンティティ（集約ルート）
// 不変条件:
//   - CreatorIDは常にMemberIDsとAdminIDsに含まれる
//   - AdminIDs ⊆ MemberIDs
//   - MemberCount == len(MemberIDs)
type Group struct {
	ID                uuid.UUID
	Name              valueobject.GroupName
	Code              valueobject.GroupCode
	IsPrivate         bool
	AllowJoinRequests bool
	CreatorID         string
	AdminIDs          []string
	MemberIDs         []string
	MemberCount       int
	PhotoCount        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewGroup は新しいグループを作成します
// 作成者は唯一のメンバーかつ管理者になります
func NewGroup(
	name valueobject.GroupName,
	code valueobject.GroupCode,
	isPrivate bool,
	allowJoinRequests bool,
	creatorID string,
) *Group {
	now := time.Now()
	return &Group{
		ID:                uuid.New(),
		Name:              name,
		Code:              code,
		IsPrivate:         isPrivate,
		AllowJoinRequests: allowJoinRequests,
		CreatorID:         creatorID,
		AdminIDs:          []string{creatorID},
		MemberIDs:         []string{creatorID},
		MemberCount:       1,
		PhotoCount:        0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ReconstructGroup は永続化データからグループを復元します
func ReconstructGroup(
	id uuid.UUID,
	name valueobject.GroupName,
	code valueobject.GroupCode,
	isPrivate bool,
	allowJoinRequests bool,
	creatorID string,
	adminIDs []string,
	memberIDs []string,
	memberCount int,
	photoCount int,
	createdAt time.Time,
	updatedAt time.Time,
) *Group {
	return &Group{
		ID:                id,
		Name:              name,
		Code:              code,
		IsPrivate:         isPrivate,
		AllowJoinRequests: allowJoinRequests,
		CreatorID:         creatorID,
		AdminIDs:          adminIDs,
		MemberIDs:         memberIDs,
		MemberCount:       memberCount,
		PhotoCount:        photoCount,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

// IsMember は指定ユーザーがメンバーかを判定します
func (g *Group) IsMember(userID string) bool {
	return slices.Contains(g.MemberIDs, userID)
}

// IsAdmin は指定ユーザーが管理者かを判定します
func (g *Group) IsAdmin(userID string) bool {
	return slices.Contains(g.AdminIDs, userID)
}

// IsCreator は指定ユーザーが作成者かを判定します
func (g *Group) IsCreator(userID string) bool {
	return g.CreatorID == userID
}

// AdminCount は管理者数を返します
func (g *Group) AdminCount() int {
	return len(g.AdminIDs)
}

// AcceptsJoinRequests は参加リクエストを受け付けるかを判定します
func (g *Group) AcceptsJoinRequests() bool {
	return g.IsPrivate && g.AllowJoinRequests
}

// CanBeViewedBy は指定ユーザーが閲覧可能かを判定します
// 非公開グループはメンバーのみ閲覧可能
func (g *Group) CanBeViewedBy(userID string) bool {
	return !g.IsPrivate || g.IsMember(userID)
}

// RoleOf は指定ユーザーの表示用ロールを返します
func (g *Group) RoleOf(userID string) valueobject.MemberRole {
	switch {
	case g.IsCreator(userID):
		return valueobject.MemberRoleCreator
	case g.IsAdmin(userID):
		return valueobject.MemberRoleAdmin
	default:
		return valueobject.MemberRoleMember
	}
}

// CanJoin は直接参加可能かを検証します
func (g *Group) CanJoin(userID string) error {
	if g.IsMember(userID) {
		return ErrAlreadyMember
	}
	return nil
}

// CanLeave は脱退可能かを検証します
// 唯一のメンバーはグループ削除を使う必要があり、他にメンバーがいる場合は最後の管理者は脱退できません
func (g *Group) CanLeave(userID string) error {
	if !g.IsMember(userID) {
		return ErrNotMember
	}
	if g.MemberCount <= 1 {
		return ErrSoleMemberMustDelete
	}
	if g.IsAdmin(userID) && g.AdminCount() == 1 {
		return ErrLastAdminCannotLeave
	}
	if g.IsCreator(userID) {
		return ErrCreatorCannotLeave
	}
	return nil
}

// CanRemoveMember は管理者によるメンバー削除が可能かを検証します
func (g *Group) CanRemoveMember(actorID, targetID string) error {
	if !g.IsAdmin(actorID) {
		return ErrNotAdmin
	}
	if g.IsCreator(targetID) {
		return ErrCannotRemoveCreator
	}
	if targetID == actorID {
		return ErrUseLeaveInstead
	}
	if !g.IsMember(targetID) {
		return ErrNotMember
	}
	return nil
}

// CanSetAdmin は管理者権限の付与/剥奪が可能かを検証します
func (g *Group) CanSetAdmin(actorID, targetID string, makeAdmin bool) error {
	if !g.IsAdmin(actorID) {
		return ErrNotAdmin
	}
	if targetID == actorID && !g.IsCreator(actorID) {
		return ErrCannotChangeOwnRole
	}
	if !makeAdmin && g.IsCreator(targetID) {
		return ErrCannotDemoteCreator
	}
	if !g.IsMember(targetID) {
		return ErrNotMember
	}
	return nil
}

// CanManage は設定変更などの管理操作が可能かを検証します
func (g *Group) CanManage(actorID string) error {
	if !g.IsAdmin(actorID) {
		return ErrNotAdmin
	}
	return nil
}

// CanDelete は削除可能かを検証します（作成者のみ）
func (g *Group) CanDelete(actorID string) error {
	if !g.IsCreator(actorID) {
		return ErrNotAdmin
	}
	return nil
}

// CanRequestToJoin は参加リクエストを送信可能かを検証します
func (g *Group) CanRequestToJoin(userID string) error {
	if !g.AcceptsJoinRequests() {
		return ErrJoinRequestsNotAllowed
	}
	if g.IsMember(userID) {
		return ErrAlreadyMember
	}
	return nil
}

// AddMember はメンバーを追加します（既存メンバーの場合は何もしない）
func (g *Group) AddMember(userID string) bool {
	if g.IsMember(userID) {
		return false
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	g.MemberCount = len(g.MemberIDs)
	g.UpdatedAt = time.Now()
	return true
}

// RemoveMember はメンバーと管理者の両方から削除します
func (g *Group) RemoveMember(userID string) bool {
	if !g.IsMember(userID) {
		return false
	}
	g.MemberIDs = slices.DeleteFunc(g.MemberIDs, func(id string) bool { return id == userID })
	g.AdminIDs = slices.DeleteFunc(g.AdminIDs, func(id string) bool { return id == userID })
	g.MemberCount = len(g.MemberIDs)
	g.UpdatedAt = time.Now()
	return true
}

// GrantAdmin は管理者権限を付与します
func (g *Group) GrantAdmin(userID string) bool {
	if g.IsAdmin(userID) || !g.IsMember(userID) {
		return false
	}
	g.AdminIDs = append(g.AdminIDs, userID)
	g.UpdatedAt = time.Now()
	return true
}

// RevokeAdmin は管理者権限を剥奪します
func (g *Group) RevokeAdmin(userID string) bool {
	if !g.IsAdmin(userID) {
		return false
	}
	g.AdminIDs = slices.DeleteFunc(g.AdminIDs, func(id string) bool { return id == userID })
	g.UpdatedAt = time.Now()
	return true
}

// GroupSettings はグループ設定の部分更新を表します
// nilのフィールドは変更されません
type GroupSettings struct {
	Name              *valueobject.GroupName
	IsPrivate         *bool
	AllowJoinRequests *bool
}

// IsEmpty は変更がないかを判定します
func (s GroupSettings) IsEmpty() bool {
	return s.Name == nil && s.IsPrivate == nil && s.AllowJoinRequests == nil
}

// ApplySettings は設定を部分的に反映します
func (g *Group) ApplySettings(s GroupSettings) {
	if s.Name != nil {
		g.Name = *s.Name
	}
	if s.IsPrivate != nil {
		g.IsPrivate = *s.IsPrivate
	}
	if s.AllowJoinRequests != nil {
		g.AllowJoinRequests = *s.AllowJoinRequests
	}
	g.UpdatedAt = time.Now()
}

// CheckInvariants はメンバーシップの不変条件を検証します
func (g *Group) CheckInvariants() error {
	if !g.IsMember(g.CreatorID) {
		return fmt.Errorf("creator %s is not a member", g.CreatorID)
	}
	if !g.IsAdmin(g.CreatorID) {
		return fmt.Errorf("creator %s is not an admin", g.CreatorID)
	}
	for _, adminID := range g.AdminIDs {
		if !g.IsMember(adminID) {
			return fmt.Errorf("admin %s is not a member", adminID)
		}
	}
	if g.MemberCount != len(g.MemberIDs) {
		return fmt.Errorf("member count %d does not match %d member ids", g.MemberCount, len(g.MemberIDs))
	}
	return nil
}
