package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

type leaveGroupTestDeps struct {
	groupRepo *mocks.MockGroupRepository
	audit     *mocks.MockAuditService
}

func newLeaveGroupTestDeps(t *testing.T) *leaveGroupTestDeps {
	t.Helper()
	return &leaveGroupTestDeps{
		groupRepo: mocks.NewMockGroupRepository(t),
		audit:     mocks.NewMockAuditService(t),
	}
}

func (d *leaveGroupTestDeps) newCommand() *command.LeaveGroupCommand {
	return command.NewLeaveGroupCommand(d.groupRepo, d.audit)
}

func TestLeaveGroupCommand_Execute_Member_Left(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.groupRepo.On("RemoveMember", ctx, g.ID, memberID).Return(true, nil).Once()
	deps.audit.ExpectAction(entity.AuditActionMemberLeave).Once()

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{GroupID: g.ID, UserID: memberID})

	require.NoError(t, err)
	assert.Equal(t, g.ID, output.LeftGroupID)
}

func TestLeaveGroupCommand_Execute_NonCreatorAdmin_Left(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.groupRepo.On("RemoveMember", ctx, g.ID, adminID).Return(true, nil).Once()
	deps.audit.ExpectAction(entity.AuditActionMemberLeave).Once()

	_, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{GroupID: g.ID, UserID: adminID})

	require.NoError(t, err)
}

func TestLeaveGroupCommand_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		group  func(t *testing.T) *entity.Group
		userID string
		code   apperror.ErrorCode
	}{
		{
			name:   "not a member",
			group:  newPopulatedGroup,
			userID: outsideID,
			code:   apperror.CodeNotMember,
		},
		{
			name: "sole member must delete",
			group: func(t *testing.T) *entity.Group {
				return newTestGroup(t, false, false)
			},
			userID: creatorID,
			code:   apperror.CodeSoleMemberMustDelete,
		},
		{
			name: "last admin cannot leave",
			group: func(t *testing.T) *entity.Group {
				g := newTestGroup(t, false, false)
				g.AddMember(memberID)
				return g
			},
			userID: creatorID,
			code:   apperror.CodeLastAdminCannotLeave,
		},
		{
			name:   "creator cannot leave while other admins remain",
			group:  newPopulatedGroup,
			userID: creatorID,
			code:   apperror.CodeCreatorCannotLeave,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			deps := newLeaveGroupTestDeps(t)
			g := tt.group(t)

			deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()

			output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{GroupID: g.ID, UserID: tt.userID})

			assert.Nil(t, output)
			assert.True(t, apperror.Is(err, tt.code), "got %v", err)
			deps.groupRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLeaveGroupCommand_Execute_RemovedConcurrently_NotMember(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.groupRepo.On("RemoveMember", ctx, g.ID, memberID).Return(false, nil).Once()

	_, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{GroupID: g.ID, UserID: memberID})

	assert.True(t, apperror.Is(err, apperror.CodeNotMember))
}
