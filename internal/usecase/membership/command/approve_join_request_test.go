package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

type resolveJoinRequestTestDeps struct {
	groupRepo       *mocks.MockGroupRepository
	joinRequestRepo *mocks.MockJoinRequestRepository
	txManager       *mocks.MockTransactionManager
	audit           *mocks.MockAuditService
}

func newResolveJoinRequestTestDeps(t *testing.T) *resolveJoinRequestTestDeps {
	t.Helper()
	return &resolveJoinRequestTestDeps{
		groupRepo:       mocks.NewMockGroupRepository(t),
		joinRequestRepo: mocks.NewMockJoinRequestRepository(t),
		txManager:       mocks.NewMockTransactionManager(t),
		audit:           mocks.NewMockAuditService(t),
	}
}

func (d *resolveJoinRequestTestDeps) newApproveCommand() *command.ApproveJoinRequestCommand {
	return command.NewApproveJoinRequestCommand(d.groupRepo, d.joinRequestRepo, d.txManager, d.audit)
}

func (d *resolveJoinRequestTestDeps) newRejectCommand() *command.RejectJoinRequestCommand {
	return command.NewRejectJoinRequestCommand(d.groupRepo, d.joinRequestRepo, d.audit)
}

func TestApproveJoinRequestCommand_Execute_Success_MemberAddedAndApproved(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, outsideID)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()
	deps.txManager.On("WithTransaction", ctx).Return(nil).Once()

	var order []string
	deps.joinRequestRepo.On("UpdateStatus", ctx, req).Return(nil).Once().
		Run(func(mock.Arguments) { order = append(order, "UpdateStatus") })
	deps.groupRepo.On("AddMember", ctx, g.ID, outsideID).Return(true, nil).Once().
		Run(func(mock.Arguments) { order = append(order, "AddMember") })
	deps.audit.ExpectAction(entity.AuditActionJoinRequestApprove).Once()

	output, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	require.NoError(t, err)
	assert.False(t, output.AlreadyMember)
	assert.Equal(t, valueobject.JoinRequestStatusApproved, output.JoinRequest.Status)
	require.NotNil(t, output.JoinRequest.ResolvedBy)
	assert.Equal(t, adminID, *output.JoinRequest.ResolvedBy)
	assert.Equal(t, []string{"UpdateStatus", "AddMember"}, order)
}

func TestApproveJoinRequestCommand_Execute_RequesterAlreadyMember_NoDoubleAdd(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, memberID)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()
	deps.txManager.On("WithTransaction", ctx).Return(nil).Once()
	deps.joinRequestRepo.On("UpdateStatus", ctx, req).Return(nil).Once()
	deps.audit.ExpectAction(entity.AuditActionJoinRequestApprove).Once()

	output, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   creatorID,
	})

	require.NoError(t, err)
	assert.True(t, output.AlreadyMember)
	assert.Equal(t, valueobject.JoinRequestStatusApproved, output.JoinRequest.Status)
	deps.groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveJoinRequestCommand_Execute_AlreadyResolved_NotPending(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, outsideID)
	require.NoError(t, req.Reject(adminID))

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()

	_, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	assert.True(t, apperror.Is(err, apperror.CodeJoinRequestNotPending))
	assert.Equal(t, valueobject.JoinRequestStatusRejected, req.Status)
}

func TestApproveJoinRequestCommand_Execute_ResolvedConcurrently_MembershipUnchanged(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, outsideID)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()
	deps.txManager.On("WithTransaction", ctx).Return(nil).Once()
	deps.joinRequestRepo.On("UpdateStatus", ctx, req).Return(apperror.NewJoinRequestNotPendingError()).Once()

	output, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	assert.Nil(t, output)
	assert.True(t, apperror.Is(err, apperror.CodeJoinRequestNotPending))
	deps.groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	deps.audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestApproveJoinRequestCommand_Execute_NonAdmin_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()

	_, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: uuid.New(),
		ActorID:   memberID,
	})

	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestApproveJoinRequestCommand_Execute_RequestFromOtherGroup_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	other := newTestGroup(t, true, true)
	req := newPendingRequest(t, other, outsideID)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()

	_, err := deps.newApproveCommand().Execute(ctx, command.ApproveJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	assert.True(t, apperror.Is(err, apperror.CodeJoinRequestNotFound))
}

func TestRejectJoinRequestCommand_Execute_Success_MembershipUnchanged(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, outsideID)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()
	deps.joinRequestRepo.On("UpdateStatus", ctx, req).Return(nil).Once()
	deps.audit.ExpectAction(entity.AuditActionJoinRequestReject).Once()

	output, err := deps.newRejectCommand().Execute(ctx, command.RejectJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	require.NoError(t, err)
	assert.Equal(t, valueobject.JoinRequestStatusRejected, output.JoinRequest.Status)
	assert.False(t, g.IsMember(outsideID))
	deps.groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectJoinRequestCommand_Execute_AlreadyApproved_NotPending(t *testing.T) {
	ctx := context.Background()
	deps := newResolveJoinRequestTestDeps(t)
	g := newPopulatedGroup(t)
	req := newPendingRequest(t, g, outsideID)
	require.NoError(t, req.Approve(creatorID))

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.joinRequestRepo.On("FindByID", ctx, req.ID).Return(req, nil).Once()

	_, err := deps.newRejectCommand().Execute(ctx, command.RejectJoinRequestInput{
		GroupID:   g.ID,
		RequestID: req.ID,
		ActorID:   adminID,
	})

	assert.True(t, apperror.Is(err, apperror.CodeJoinRequestNotPending))
}
