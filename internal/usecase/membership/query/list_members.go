package query

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// ListMembersInput はメンバー一覧取得の入力を定義します
type ListMembersInput struct {
	GroupID uuid.UUID
	UserID  string
}

// MemberView は表示用のメンバー情報です
type MemberView struct {
	UserID      string
	DisplayName string
	Email       string
	PhotoURL    *string
	Role        valueobject.MemberRole
}

// ListMembersOutput はメンバー一覧取得の出力を定義します
type ListMembersOutput struct {
	Members []MemberView
}

// ListMembersQuery はメンバー一覧取得クエリです
// 表示名の解決はベストエフォートで、失敗したユーザーはIDの先頭8文字で表示します
type ListMembersQuery struct {
	groupRepo repository.GroupRepository
	profiles  service.ProfileResolver
}

// NewListMembersQuery は新しいListMembersQueryを作成します
func NewListMembersQuery(groupRepo repository.GroupRepository, profiles service.ProfileResolver) *ListMembersQuery {
	return &ListMembersQuery{
		groupRepo: groupRepo,
		profiles:  profiles,
	}
}

// Execute はメンバー一覧取得を実行します
func (q *ListMembersQuery) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	// 1. グループの存在確認
	group, err := q.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. メンバーのみ閲覧可能
	if !group.IsMember(input.UserID) {
		return nil, apperror.NewNotMemberError()
	}

	// 3. 表示名の解決
	profiles := q.profiles.ResolveMany(ctx, group.MemberIDs)

	members := make([]MemberView, 0, len(group.MemberIDs))
	for _, memberID := range group.MemberIDs {
		view := MemberView{
			UserID: memberID,
			Role:   group.RoleOf(memberID),
		}
		if p, ok := profiles[memberID]; ok && p != nil {
			view.DisplayName = p.ResolvedDisplayName()
			view.Email = p.Email
			view.PhotoURL = p.PhotoURL
		} else {
			view.DisplayName = entity.FallbackDisplayName(memberID)
		}
		members = append(members, view)
	}

	// 4. 作成者→管理者→メンバーの順（同順位は参加順）
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Role.Level() > members[j].Role.Level()
	})

	return &ListMembersOutput{Members: members}, nil
}
