package valueobject

// MemberRole はグループ内での表示用ロール
// 権限はGroupのadminIdsで決まり、このロールはそこから導出される
type MemberRole string

const (
	MemberRoleCreator MemberRole = "creator"
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleMember  MemberRole = "member"
)

// String は文字列を返します
func (r MemberRole) String() string {
	return string(r)
}

// IsAdmin は管理者権限を持つかを判定します（作成者は常に管理者）
func (r MemberRole) IsAdmin() bool {
	return r == MemberRoleCreator || r == MemberRoleAdmin
}

// Level はロールのレベルを返します（並び替え用）
func (r MemberRole) Level() int {
	switch r {
	case MemberRoleCreator:
		return 3
	case MemberRoleAdmin:
		return 2
	case MemberRoleMember:
		return 1
	default:
		return 0
	}
}
