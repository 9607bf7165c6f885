package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/usecase/profile/command"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

const userID = "uid-aiko-0001"

type updateProfileTestDeps struct {
	profileRepo *mocks.MockUserProfileRepository
	profiles    *mocks.MockProfileResolver
}

func newUpdateProfileTestDeps(t *testing.T) *updateProfileTestDeps {
	t.Helper()
	return &updateProfileTestDeps{
		profileRepo: mocks.NewMockUserProfileRepository(t),
		profiles:    mocks.NewMockProfileResolver(t),
	}
}

func (d *updateProfileTestDeps) newCommand() *command.UpdateProfileCommand {
	return command.NewUpdateProfileCommand(d.profileRepo, d.profiles)
}

func (d *updateProfileTestDeps) expectExisting(ctx context.Context, p *entity.UserProfile) {
	d.profiles.On("GetOrCreate", ctx, mock.MatchedBy(func(c *entity.UserProfile) bool {
		return c.UserID == p.UserID
	})).Return(p, nil)
}

func TestUpdateProfileCommand_Execute_Success(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateProfileTestDeps(t)
	existing := entity.NewUserProfile(userID, "aiko", "aiko@example.com", nil)

	deps.expectExisting(ctx, existing)
	deps.profileRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	deps.profiles.On("Forget", ctx, userID).Return()

	name := "  Aiko Tanaka  "
	photo := "https://example.com/aiko.png"
	output, err := deps.newCommand().Execute(ctx, command.UpdateProfileInput{
		UserID:      userID,
		DisplayName: &name,
		PhotoURL:    &photo,
	})

	require.NoError(t, err)
	assert.Equal(t, "Aiko Tanaka", output.Profile.DisplayName)
	require.NotNil(t, output.Profile.PhotoURL)
	assert.Equal(t, photo, *output.Profile.PhotoURL)
	assert.Equal(t, "aiko@example.com", output.Profile.Email)
}

func TestUpdateProfileCommand_Execute_EmptyPhoto_ClearsPhoto(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateProfileTestDeps(t)
	photo := "https://example.com/old.png"
	existing := entity.NewUserProfile(userID, "Aiko", "", &photo)

	deps.expectExisting(ctx, existing)
	deps.profileRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	deps.profiles.On("Forget", ctx, userID).Return()

	empty := ""
	output, err := deps.newCommand().Execute(ctx, command.UpdateProfileInput{UserID: userID, PhotoURL: &empty})

	require.NoError(t, err)
	assert.Nil(t, output.Profile.PhotoURL)
	assert.Equal(t, "Aiko", output.Profile.DisplayName)
}

func TestUpdateProfileCommand_Execute_BlankName_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateProfileTestDeps(t)
	deps.expectExisting(ctx, entity.NewUserProfile(userID, "Aiko", "", nil))

	blank := "   "
	_, err := deps.newCommand().Execute(ctx, command.UpdateProfileInput{UserID: userID, DisplayName: &blank})

	assert.True(t, apperror.Is(err, apperror.CodeValidationError))
	deps.profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateProfileCommand_Execute_NameTooLong_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateProfileTestDeps(t)
	deps.expectExisting(ctx, entity.NewUserProfile(userID, "Aiko", "", nil))

	long := strings.Repeat("名", entity.MaxDisplayNameLength+1)
	_, err := deps.newCommand().Execute(ctx, command.UpdateProfileInput{UserID: userID, DisplayName: &long})

	assert.True(t, apperror.Is(err, apperror.CodeValidationError))
}

func TestUpdateProfileCommand_Execute_UpsertFails_DoesNotEvict(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateProfileTestDeps(t)
	deps.expectExisting(ctx, entity.NewUserProfile(userID, "Aiko", "", nil))
	storeErr := errors.New("connection refused")
	deps.profileRepo.On("Upsert", ctx, mock.Anything).Return(storeErr)

	name := "Aiko T"
	_, err := deps.newCommand().Execute(ctx, command.UpdateProfileInput{UserID: userID, DisplayName: &name})

	assert.ErrorIs(t, err, storeErr)
	deps.profiles.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything)
}
