package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/interface/dto/request"
	"github.com/Hiro-mackay/tripshare/internal/interface/validator"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

func TestValidate_JoinGroupByCode_AcceptsLowercaseCode(t *testing.T) {
	v := validator.NewCustomValidator()

	err := v.Validate(&request.JoinGroupByCodeRequest{Code: " ab12cd "})

	assert.NoError(t, err)
}

func TestValidate_JoinGroupByCode_RejectsBadCode(t *testing.T) {
	v := validator.NewCustomValidator()

	err := v.Validate(&request.JoinGroupByCodeRequest{Code: "AB-12C"})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "code", appErr.Details[0].Field)
	assert.Equal(t, "must be a 6 character code of letters and digits", appErr.Details[0].Message)
}

func TestValidate_CreateGroup_MissingName_CamelCaseField(t *testing.T) {
	v := validator.NewCustomValidator()

	err := v.Validate(&request.CreateGroupRequest{})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "name", appErr.Details[0].Field)
	assert.Equal(t, "this field is required", appErr.Details[0].Message)
}

func TestValidate_ToggleAdminRole_FalseIsPresent(t *testing.T) {
	v := validator.NewCustomValidator()
	makeAdmin := false

	assert.NoError(t, v.Validate(&request.ToggleAdminRoleRequest{MakeAdmin: &makeAdmin}))
	assert.Error(t, v.Validate(&request.ToggleAdminRoleRequest{}))
}
