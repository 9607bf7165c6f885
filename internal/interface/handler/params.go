package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/interface/middleware"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// currentUserID は認証済みユーザーIDを返します
func currentUserID(c echo.Context) (string, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return "", apperror.NewUnauthorizedError("invalid token")
	}
	return userID, nil
}

// currentRequester はトークンのクレームから申請者情報を作ります
func currentRequester(c echo.Context) (command.Requester, error) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return command.Requester{}, apperror.NewUnauthorizedError("invalid token")
	}

	requester := command.Requester{
		UserID:      identity.UserID(),
		DisplayName: identity.Name,
		Email:       identity.Email,
	}
	if identity.Picture != "" {
		picture := identity.Picture
		requester.PhotoURL = &picture
	}
	return requester, nil
}

// pathUUID はパスパラメータをUUIDとして解釈します
func pathUUID(c echo.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("invalid "+label, []apperror.FieldError{
			{Field: name, Message: "must be a valid UUID"},
		})
	}
	return id, nil
}

// pathGroupID はパスの :id をグループIDとして解釈し、以降のログにgroup_idを付与します
func pathGroupID(c echo.Context) (uuid.UUID, error) {
	groupID, err := pathUUID(c, "id", "group ID")
	if err != nil {
		return uuid.Nil, err
	}
	ctx := logger.ContextWithGroupID(c.Request().Context(), groupID.String())
	c.SetRequest(c.Request().WithContext(ctx))
	return groupID, nil
}

// bindAndValidate はリクエストボディを読み取り検証します
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	return c.Validate(req)
}
