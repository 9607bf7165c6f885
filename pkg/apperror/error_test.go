package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

func TestAppError_Error_IncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.NewInternalError(cause)

	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestAs_WrappedAppError_Found(t *testing.T) {
	wrapped := fmt.Errorf("join: %w", apperror.NewAlreadyMemberError())

	appErr, ok := apperror.As(wrapped)

	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyMember, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestIsNotFound_MembershipCodes(t *testing.T) {
	assert.True(t, apperror.IsNotFound(apperror.NewGroupNotFoundError()))
	assert.True(t, apperror.IsNotFound(apperror.NewJoinRequestNotFoundError()))
	assert.True(t, apperror.IsNotFound(apperror.NewNotFoundError("profile")))
	assert.False(t, apperror.IsNotFound(apperror.NewNotMemberError()))
	assert.False(t, apperror.IsNotFound(errors.New("plain")))
}

func TestIsForbidden_PermissionDenied(t *testing.T) {
	assert.True(t, apperror.IsForbidden(apperror.NewPermissionDeniedError("admin only")))
	assert.True(t, apperror.IsForbidden(apperror.NewForbiddenError("nope")))
	assert.False(t, apperror.IsForbidden(apperror.NewUseLeaveInsteadError()))
}

func TestMembershipErrors_DistinctCodesAndMessages(t *testing.T) {
	errs := []*apperror.AppError{
		apperror.NewGroupNotFoundError(),
		apperror.NewJoinRequestNotFoundError(),
		apperror.NewAlreadyMemberError(),
		apperror.NewNotMemberError(),
		apperror.NewPermissionDeniedError("only admins can do this"),
		apperror.NewCannotRemoveCreatorError(),
		apperror.NewCannotDemoteCreatorError(),
		apperror.NewUseLeaveInsteadError(),
		apperror.NewCannotChangeOwnRoleError(),
		apperror.NewLastAdminCannotLeaveError(),
		apperror.NewSoleMemberMustDeleteError(),
		apperror.NewCreatorCannotLeaveError(),
		apperror.NewJoinRequestsNotAllowedError(),
		apperror.NewInvitationRequiredError(),
		apperror.NewDuplicatePendingRequestError(),
		apperror.NewJoinRequestNotPendingError(),
		apperror.NewCodeGenerationExhaustedError(10),
	}

	codes := make(map[apperror.ErrorCode]bool)
	messages := make(map[string]bool)
	for _, e := range errs {
		assert.False(t, codes[e.Code], "duplicate code %s", e.Code)
		assert.False(t, messages[e.Message], "duplicate message %q", e.Message)
		assert.NotZero(t, e.HTTPStatus)
		codes[e.Code] = true
		messages[e.Message] = true
	}
}
