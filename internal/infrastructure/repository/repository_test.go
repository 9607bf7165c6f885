package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/repository"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// PostgresRepositorySuite はTEST_DATABASE_URLのPostgreSQLに対してリポジトリを検証します
type PostgresRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	client    *database.PostgresClient
	txManager *database.TxManager
	groups    *repository.GroupRepository
	requests  *repository.JoinRequestRepository
	codes     *service.GroupCodeGenerator
	created   []uuid.UUID
}

func TestPostgresRepositorySuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	client, err := database.NewPostgresClient(s.ctx, os.Getenv("TEST_DATABASE_URL"), database.DefaultDBConfig(4))
	s.Require().NoError(err)
	s.Require().NoError(client.Migrate(s.ctx))

	s.client = client
	s.txManager = database.NewTxManager(client.Pool())
	s.groups = repository.NewGroupRepository(s.txManager)
	s.requests = repository.NewJoinRequestRepository(s.txManager)
	s.codes = service.NewGroupCodeGenerator(s.groups)
}

func (s *PostgresRepositorySuite) TearDownTest() {
	for _, id := range s.created {
		_ = s.requests.DeleteByGroupID(s.ctx, id)
		_ = s.groups.Delete(s.ctx, id)
	}
	s.created = nil
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	s.client.Close()
}

// newGroup はU1を作成者、U2を一般メンバーとするグループを保存します
func (s *PostgresRepositorySuite) newGroup(isPrivate, allowJoinRequests bool) *entity.Group {
	code, err := s.codes.Generate(s.ctx)
	s.Require().NoError(err)
	name, err := valueobject.NewGroupName("Trip " + code.Value())
	s.Require().NoError(err)

	g := entity.NewGroup(name, code, isPrivate, allowJoinRequests, "U1")
	g.AddMember("U2")
	s.Require().NoError(s.groups.Create(s.ctx, g))
	s.created = append(s.created, g.ID)
	return g
}

func (s *PostgresRepositorySuite) reload(id uuid.UUID) *entity.Group {
	g, err := s.groups.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.NoError(g.CheckInvariants())
	return g
}

func (s *PostgresRepositorySuite) assertCode(err error, code apperror.ErrorCode) {
	s.T().Helper()
	s.Require().Error(err)
	s.True(apperror.Is(err, code), "expected %s, got %v", code, err)
}

func (s *PostgresRepositorySuite) TestCreate_DuplicateCode_Conflict() {
	g := s.newGroup(false, false)
	dup := entity.NewGroup(g.Name, g.Code, false, false, "U9")

	err := s.groups.Create(s.ctx, dup)

	s.assertCode(err, apperror.CodeConflict)
}

func (s *PostgresRepositorySuite) TestFindByID_Unknown_GroupNotFound() {
	_, err := s.groups.FindByID(s.ctx, uuid.New())

	s.assertCode(err, apperror.CodeGroupNotFound)
}

func (s *PostgresRepositorySuite) TestFindByCode_And_FindByMemberID() {
	g := s.newGroup(true, false)

	byCode, err := s.groups.FindByCode(s.ctx, g.Code)
	s.Require().NoError(err)
	s.Equal(g.ID, byCode.ID)

	mine, err := s.groups.FindByMemberID(s.ctx, "U2")
	s.Require().NoError(err)
	ids := make([]uuid.UUID, 0, len(mine))
	for _, m := range mine {
		ids = append(ids, m.ID)
	}
	s.Contains(ids, g.ID)

	exists, err := s.groups.ExistsByCode(s.ctx, g.Code)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PostgresRepositorySuite) TestAddMember_GuardedUpdate() {
	tests := []struct {
		name      string
		groupID   func(g *entity.Group) uuid.UUID
		userID    string
		wantAdded bool
		wantErr   apperror.ErrorCode
		wantCount int
	}{
		{name: "new member appended", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U3", wantAdded: true, wantCount: 3},
		{name: "existing member untouched", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U2", wantCount: 2},
		{name: "unknown group", groupID: func(*entity.Group) uuid.UUID { return uuid.New() }, userID: "U3", wantErr: apperror.CodeGroupNotFound, wantCount: 2},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			g := s.newGroup(false, false)

			added, err := s.groups.AddMember(s.ctx, tt.groupID(g), tt.userID)

			if tt.wantErr != "" {
				s.assertCode(err, tt.wantErr)
			} else {
				s.Require().NoError(err)
			}
			s.Equal(tt.wantAdded, added)
			s.Equal(tt.wantCount, s.reload(g.ID).MemberCount)
		})
	}
}

func (s *PostgresRepositorySuite) TestRemoveMember_GuardedUpdate() {
	tests := []struct {
		name        string
		groupID     func(g *entity.Group) uuid.UUID
		userID      string
		wantRemoved bool
		wantErr     apperror.ErrorCode
		wantCount   int
	}{
		{name: "member removed", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U2", wantRemoved: true, wantCount: 1},
		{name: "non member untouched", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U7", wantCount: 2},
		{name: "creator never removed", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U1", wantCount: 2},
		{name: "unknown group", groupID: func(*entity.Group) uuid.UUID { return uuid.New() }, userID: "U2", wantErr: apperror.CodeGroupNotFound, wantCount: 2},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			g := s.newGroup(false, false)

			removed, err := s.groups.RemoveMember(s.ctx, tt.groupID(g), tt.userID)

			if tt.wantErr != "" {
				s.assertCode(err, tt.wantErr)
			} else {
				s.Require().NoError(err)
			}
			s.Equal(tt.wantRemoved, removed)
			s.Equal(tt.wantCount, s.reload(g.ID).MemberCount)
		})
	}
}

func (s *PostgresRepositorySuite) TestRemoveMember_AlsoDropsAdminRole() {
	g := s.newGroup(false, false)
	s.Require().NoError(s.groups.AddAdmin(s.ctx, g.ID, "U2"))

	removed, err := s.groups.RemoveMember(s.ctx, g.ID, "U2")

	s.Require().NoError(err)
	s.True(removed)
	stored := s.reload(g.ID)
	s.False(stored.IsAdmin("U2"))
	s.Equal([]string{"U1"}, stored.AdminIDs)
}

func (s *PostgresRepositorySuite) TestAddAdmin_GuardedUpdate() {
	tests := []struct {
		name       string
		groupID    func(g *entity.Group) uuid.UUID
		userID     string
		wantErr    apperror.ErrorCode
		wantAdmins []string
	}{
		{name: "member promoted", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U2", wantAdmins: []string{"U1", "U2"}},
		{name: "existing admin not duplicated", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U1", wantAdmins: []string{"U1"}},
		{name: "non member rejected", groupID: func(g *entity.Group) uuid.UUID { return g.ID }, userID: "U7", wantErr: apperror.CodeNotMember, wantAdmins: []string{"U1"}},
		{name: "unknown group", groupID: func(*entity.Group) uuid.UUID { return uuid.New() }, userID: "U2", wantErr: apperror.CodeGroupNotFound, wantAdmins: []string{"U1"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			g := s.newGroup(false, false)

			err := s.groups.AddAdmin(s.ctx, tt.groupID(g), tt.userID)

			if tt.wantErr != "" {
				s.assertCode(err, tt.wantErr)
			} else {
				s.Require().NoError(err)
			}
			s.Equal(tt.wantAdmins, s.reload(g.ID).AdminIDs)
		})
	}
}

func (s *PostgresRepositorySuite) TestRemoveAdmin_CreatorAndUnknownGroup() {
	g := s.newGroup(false, false)

	s.assertCode(s.groups.RemoveAdmin(s.ctx, g.ID, "U1"), apperror.CodeCannotDemoteCreator)
	s.assertCode(s.groups.RemoveAdmin(s.ctx, uuid.New(), "U2"), apperror.CodeGroupNotFound)
	s.Equal([]string{"U1"}, s.reload(g.ID).AdminIDs)
}

func (s *PostgresRepositorySuite) TestUpdateSettings_PartialAndUnknown() {
	g := s.newGroup(false, false)
	private := true

	s.Require().NoError(s.groups.UpdateSettings(s.ctx, g.ID, entity.GroupSettings{IsPrivate: &private}))

	stored := s.reload(g.ID)
	s.True(stored.IsPrivate)
	s.Equal(g.Name.Value(), stored.Name.Value())
	s.assertCode(s.groups.UpdateSettings(s.ctx, uuid.New(), entity.GroupSettings{IsPrivate: &private}), apperror.CodeGroupNotFound)
}

func (s *PostgresRepositorySuite) TestWithTransaction_ErrorRollsBackMembership() {
	g := s.newGroup(false, false)
	failure := errors.New("abort")

	err := s.txManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := s.groups.AddMember(ctx, g.ID, "U3"); err != nil {
			return err
		}
		return failure
	})

	s.ErrorIs(err, failure)
	stored := s.reload(g.ID)
	s.False(stored.IsMember("U3"))
	s.Equal(2, stored.MemberCount)
}

func (s *PostgresRepositorySuite) newPendingRequest(g *entity.Group, userID string) *entity.JoinRequest {
	requester := entity.NewUserProfile(userID, "User "+userID, userID+"@example.com", nil)
	req := entity.NewJoinRequest(g.ID, requester, nil)
	s.Require().NoError(s.requests.Create(s.ctx, req))
	return req
}

func (s *PostgresRepositorySuite) TestJoinRequest_SecondPending_Conflict() {
	g := s.newGroup(true, true)
	s.newPendingRequest(g, "U5")

	requester := entity.NewUserProfile("U5", "User U5", "u5@example.com", nil)
	err := s.requests.Create(s.ctx, entity.NewJoinRequest(g.ID, requester, nil))

	s.assertCode(err, apperror.CodeConflict)
}

func (s *PostgresRepositorySuite) TestJoinRequest_UpdateStatus_OnlyFromPending() {
	g := s.newGroup(true, true)
	req := s.newPendingRequest(g, "U5")

	rejected := *req
	s.Require().NoError(rejected.Reject("U1"))
	s.Require().NoError(s.requests.UpdateStatus(s.ctx, &rejected))

	approved := *req
	s.Require().NoError(approved.Approve("U1"))
	s.assertCode(s.requests.UpdateStatus(s.ctx, &approved), apperror.CodeJoinRequestNotPending)

	stored, err := s.requests.FindByID(s.ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(valueobject.JoinRequestStatusRejected, stored.Status)

	unknown := *req
	unknown.ID = uuid.New()
	s.assertCode(s.requests.UpdateStatus(s.ctx, &unknown), apperror.CodeJoinRequestNotFound)
}

func (s *PostgresRepositorySuite) TestJoinRequest_ResubmitAfterReject_Allowed() {
	g := s.newGroup(true, true)
	req := s.newPendingRequest(g, "U5")
	s.Require().NoError(req.Reject("U1"))
	s.Require().NoError(s.requests.UpdateStatus(s.ctx, req))

	s.newPendingRequest(g, "U5")

	count, err := s.requests.CountPendingByGroupID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}
