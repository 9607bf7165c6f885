package membership

import (
	"errors"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// TranslateError はドメインのセンチネルエラーをAppErrorに変換します
// 対応しないエラー（ストアや通信の失敗など）はそのまま返します
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrAlreadyMember):
		return apperror.NewAlreadyMemberError()
	case errors.Is(err, entity.ErrNotMember):
		return apperror.NewNotMemberError()
	case errors.Is(err, entity.ErrNotAdmin):
		return apperror.NewPermissionDeniedError("only group admins can perform this action")
	case errors.Is(err, entity.ErrCannotRemoveCreator):
		return apperror.NewCannotRemoveCreatorError()
	case errors.Is(err, entity.ErrCannotDemoteCreator):
		return apperror.NewCannotDemoteCreatorError()
	case errors.Is(err, entity.ErrUseLeaveInstead):
		return apperror.NewUseLeaveInsteadError()
	case errors.Is(err, entity.ErrCannotChangeOwnRole):
		return apperror.NewCannotChangeOwnRoleError()
	case errors.Is(err, entity.ErrLastAdminCannotLeave):
		return apperror.NewLastAdminCannotLeaveError()
	case errors.Is(err, entity.ErrSoleMemberMustDelete):
		return apperror.NewSoleMemberMustDeleteError()
	case errors.Is(err, entity.ErrCreatorCannotLeave):
		return apperror.NewCreatorCannotLeaveError()
	case errors.Is(err, entity.ErrJoinRequestsNotAllowed):
		return apperror.NewJoinRequestsNotAllowedError()
	case errors.Is(err, entity.ErrJoinRequestNotPending):
		return apperror.NewJoinRequestNotPendingError()
	case errors.Is(err, service.ErrCodeGenerationExhausted):
		return apperror.NewCodeGenerationExhaustedError(service.DefaultCodeMaxAttempts)
	default:
		return err
	}
}
