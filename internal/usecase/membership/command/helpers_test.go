package command_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

const (
	creatorID = "user-creator-0001"
	adminID   = "user-admin-0002"
	memberID  = "user-member-0003"
	outsideID = "user-outside-0004"
)

// newTestGroup は作成者のみのグループを返します
func newTestGroup(t *testing.T, isPrivate, allowJoinRequests bool) *entity.Group {
	t.Helper()
	name, err := valueobject.NewGroupName("Kyoto 2026")
	require.NoError(t, err)
	code, err := valueobject.NewGroupCode("KYT026")
	require.NoError(t, err)
	return entity.NewGroup(name, code, isPrivate, allowJoinRequests, creatorID)
}

// newPopulatedGroup は作成者・管理者・一般メンバーの3名のグループを返します
func newPopulatedGroup(t *testing.T) *entity.Group {
	t.Helper()
	g := newTestGroup(t, true, true)
	g.AddMember(adminID)
	g.GrantAdmin(adminID)
	g.AddMember(memberID)
	return g
}

func newPendingRequest(t *testing.T, g *entity.Group, userID string) *entity.JoinRequest {
	t.Helper()
	profile := entity.NewUserProfile(userID, "Traveler", userID+"@example.com", nil)
	return entity.NewJoinRequest(g.ID, profile, nil)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
