package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はエラーコードを表します
type ErrorCode string

const (
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// メンバーシップ関連のエラーコード
const (
	CodeGroupNotFound           ErrorCode = "GROUP_NOT_FOUND"
	CodeJoinRequestNotFound     ErrorCode = "JOIN_REQUEST_NOT_FOUND"
	CodeAlreadyMember           ErrorCode = "ALREADY_MEMBER"
	CodeNotMember               ErrorCode = "NOT_MEMBER"
	CodePermissionDenied        ErrorCode = "PERMISSION_DENIED"
	CodeCannotRemoveCreator     ErrorCode = "CANNOT_REMOVE_CREATOR"
	CodeCannotDemoteCreator     ErrorCode = "CANNOT_DEMOTE_CREATOR"
	CodeUseLeaveInstead         ErrorCode = "USE_LEAVE_INSTEAD"
	CodeCannotChangeOwnRole     ErrorCode = "CANNOT_CHANGE_OWN_ROLE"
	CodeLastAdminCannotLeave    ErrorCode = "LAST_ADMIN_CANNOT_LEAVE"
	CodeSoleMemberMustDelete    ErrorCode = "SOLE_MEMBER_MUST_DELETE"
	CodeCreatorCannotLeave      ErrorCode = "CREATOR_CANNOT_LEAVE"
	CodeJoinRequestsNotAllowed  ErrorCode = "JOIN_REQUESTS_NOT_ALLOWED"
	CodeInvitationRequired      ErrorCode = "INVITATION_REQUIRED"
	CodeDuplicatePendingRequest ErrorCode = "DUPLICATE_PENDING_REQUEST"
	CodeJoinRequestNotPending   ErrorCode = "JOIN_REQUEST_NOT_PENDING"
	CodeCodeGenerationExhausted ErrorCode = "CODE_GENERATION_EXHAUSTED"
)

// AppError はアプリケーションエラーを表します
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError はフィールドエラーを表します
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はerrorインターフェースを実装します
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap は元のエラーを返します
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError はバリデーションエラーを作成します
func NewValidationError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError は不正リクエストエラーを作成します
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError は認証エラーを作成します
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewTokenExpiredError はトークン期限切れエラーを作成します
func NewTokenExpiredError() *AppError {
	return &AppError{
		Code:       CodeTokenExpired,
		Message:    "token has expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError は権限エラーを作成します
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError はリソース不在エラーを作成します
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError は競合エラーを作成します
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewTooManyRequestsError はレート制限エラーを作成します
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Code:       CodeRateLimitExceeded,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewInternalError は内部エラーを作成します
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewServiceUnavailableError はサービス利用不可エラーを作成します
func NewServiceUnavailableError(message string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// New は任意のコードでエラーを作成します
func New(code ErrorCode, message string, status int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// NewGroupNotFoundError はグループ不在エラーを作成します
func NewGroupNotFoundError() *AppError {
	return New(CodeGroupNotFound, "group not found", http.StatusNotFound)
}

// NewJoinRequestNotFoundError は参加リクエスト不在エラーを作成します
func NewJoinRequestNotFoundError() *AppError {
	return New(CodeJoinRequestNotFound, "join request not found", http.StatusNotFound)
}

// NewAlreadyMemberError は既存メンバーエラーを作成します
func NewAlreadyMemberError() *AppError {
	return New(CodeAlreadyMember, "user is already a member of this group", http.StatusConflict)
}

// NewNotMemberError は非メンバーエラーを作成します
func NewNotMemberError() *AppError {
	return New(CodeNotMember, "user is not a member of this group", http.StatusForbidden)
}

// NewPermissionDeniedError は管理者権限不足エラーを作成します
func NewPermissionDeniedError(message string) *AppError {
	return New(CodePermissionDenied, message, http.StatusForbidden)
}

// NewCannotRemoveCreatorError は作成者削除エラーを作成します
func NewCannotRemoveCreatorError() *AppError {
	return New(CodeCannotRemoveCreator, "the group creator cannot be removed", http.StatusUnprocessableEntity)
}

// NewCannotDemoteCreatorError は作成者降格エラーを作成します
func NewCannotDemoteCreatorError() *AppError {
	return New(CodeCannotDemoteCreator, "the group creator is always an admin", http.StatusUnprocessableEntity)
}

// NewUseLeaveInsteadError は自己削除エラーを作成します
func NewUseLeaveInsteadError() *AppError {
	return New(CodeUseLeaveInstead, "use leave to remove yourself from the group", http.StatusUnprocessableEntity)
}

// NewCannotChangeOwnRoleError は自身のロール変更エラーを作成します
func NewCannotChangeOwnRoleError() *AppError {
	return New(CodeCannotChangeOwnRole, "you cannot change your own admin role", http.StatusUnprocessableEntity)
}

// NewLastAdminCannotLeaveError は最後の管理者脱退エラーを作成します
func NewLastAdminCannotLeaveError() *AppError {
	return New(CodeLastAdminCannotLeave, "promote another member to admin before leaving", http.StatusUnprocessableEntity)
}

// NewSoleMemberMustDeleteError は唯一のメンバー脱退エラーを作成します
func NewSoleMemberMustDeleteError() *AppError {
	return New(CodeSoleMemberMustDelete, "you are the only member; delete the group instead", http.StatusUnprocessableEntity)
}

// NewCreatorCannotLeaveError は作成者脱退エラーを作成します
func NewCreatorCannotLeaveError() *AppError {
	return New(CodeCreatorCannotLeave, "the group creator cannot leave; delete the group instead", http.StatusUnprocessableEntity)
}

// NewJoinRequestsNotAllowedError は参加リクエスト不可エラーを作成します
func NewJoinRequestsNotAllowedError() *AppError {
	return New(CodeJoinRequestsNotAllowed, "this group does not accept join requests", http.StatusForbidden)
}

// NewInvitationRequiredError は招待必須エラーを作成します
func NewInvitationRequiredError() *AppError {
	return New(CodeInvitationRequired, "this group is private; an invitation is required to join", http.StatusForbidden)
}

// NewDuplicatePendingRequestError は重複参加リクエストエラーを作成します
func NewDuplicatePendingRequestError() *AppError {
	return New(CodeDuplicatePendingRequest, "a pending join request already exists", http.StatusConflict)
}

// NewJoinRequestNotPendingError は処理済み参加リクエストエラーを作成します
func NewJoinRequestNotPendingError() *AppError {
	return New(CodeJoinRequestNotPending, "join request has already been resolved", http.StatusConflict)
}

// NewCodeGenerationExhaustedError はコード生成失敗エラーを作成します
func NewCodeGenerationExhaustedError(attempts int) *AppError {
	return New(CodeCodeGenerationExhausted, fmt.Sprintf("could not generate a unique group code after %d attempts", attempts), http.StatusServiceUnavailable)
}

// HasCode はエラーが特定のコードかどうかを判定します
func (e *AppError) HasCode(code ErrorCode) bool {
	return e.Code == code
}

// As はエラーチェーンからAppErrorを取り出します
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is はエラーチェーンに特定コードのAppErrorが含まれるかを判定します
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// IsNotFound はリソース不在エラーかどうかを判定します
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case CodeNotFound, CodeGroupNotFound, CodeJoinRequestNotFound:
		return true
	}
	return false
}

// IsUnauthorized は認証エラーかどうかを判定します
func IsUnauthorized(err error) bool {
	return Is(err, CodeUnauthorized) || Is(err, CodeTokenExpired)
}

// IsForbidden は権限エラーかどうかを判定します
func IsForbidden(err error) bool {
	return Is(err, CodeForbidden) || Is(err, CodePermissionDenied)
}
