package command_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

type updateGroupSettingsTestDeps struct {
	groupRepo *mocks.MockGroupRepository
	audit     *mocks.MockAuditService
}

func newUpdateGroupSettingsTestDeps(t *testing.T) *updateGroupSettingsTestDeps {
	t.Helper()
	return &updateGroupSettingsTestDeps{
		groupRepo: mocks.NewMockGroupRepository(t),
		audit:     mocks.NewMockAuditService(t),
	}
}

func (d *updateGroupSettingsTestDeps) newCommand() *command.UpdateGroupSettingsCommand {
	return command.NewUpdateGroupSettingsCommand(d.groupRepo, d.audit)
}

func TestUpdateGroupSettingsCommand_Execute_PartialUpdate_OnlyGivenFieldsChange(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateGroupSettingsTestDeps(t)
	g := newPopulatedGroup(t)
	membersBefore := append([]string(nil), g.MemberIDs...)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.groupRepo.On("UpdateSettings", ctx, g.ID, mock.MatchedBy(func(s entity.GroupSettings) bool {
		return s.Name == nil && s.IsPrivate != nil && !*s.IsPrivate && s.AllowJoinRequests == nil
	})).Return(nil).Once()
	deps.audit.ExpectAction(entity.AuditActionGroupUpdate).Once()

	output, err := deps.newCommand().Execute(ctx, command.UpdateGroupSettingsInput{
		GroupID:   g.ID,
		ActorID:   adminID,
		IsPrivate: boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, output.Group.IsPrivate)
	assert.True(t, output.Group.AllowJoinRequests)
	assert.Equal(t, "Kyoto 2026", output.Group.Name.Value())
	assert.Equal(t, membersBefore, output.Group.MemberIDs)
}

func TestUpdateGroupSettingsCommand_Execute_Rename_Trimmed(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateGroupSettingsTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()
	deps.groupRepo.On("UpdateSettings", ctx, g.ID, mock.AnythingOfType("entity.GroupSettings")).Return(nil).Once()
	deps.audit.ExpectAction(entity.AuditActionGroupUpdate).Once()

	output, err := deps.newCommand().Execute(ctx, command.UpdateGroupSettingsInput{
		GroupID: g.ID,
		ActorID: creatorID,
		Name:    strPtr("  Osaka  "),
	})

	require.NoError(t, err)
	assert.Equal(t, "Osaka", output.Group.Name.Value())
}

func TestUpdateGroupSettingsCommand_Execute_NoFields_NoWrite(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateGroupSettingsTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()

	output, err := deps.newCommand().Execute(ctx, command.UpdateGroupSettingsInput{GroupID: g.ID, ActorID: adminID})

	require.NoError(t, err)
	assert.Same(t, g, output.Group)
	deps.groupRepo.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateGroupSettingsCommand_Execute_NonAdmin_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateGroupSettingsTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()

	_, err := deps.newCommand().Execute(ctx, command.UpdateGroupSettingsInput{
		GroupID:   g.ID,
		ActorID:   memberID,
		IsPrivate: boolPtr(false),
	})

	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestUpdateGroupSettingsCommand_Execute_NameTooLong_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateGroupSettingsTestDeps(t)
	g := newPopulatedGroup(t)

	deps.groupRepo.On("FindByID", ctx, g.ID).Return(g, nil).Once()

	_, err := deps.newCommand().Execute(ctx, command.UpdateGroupSettingsInput{
		GroupID: g.ID,
		ActorID: adminID,
		Name:    strPtr(strings.Repeat("a", 101)),
	})

	assert.True(t, apperror.Is(err, apperror.CodeValidationError))
}
