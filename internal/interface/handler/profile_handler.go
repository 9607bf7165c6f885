package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/interface/dto/request"
	"github.com/Hiro-mackay/tripshare/internal/interface/dto/response"
	"github.com/Hiro-mackay/tripshare/internal/interface/presenter"
	profilecmd "github.com/Hiro-mackay/tripshare/internal/usecase/profile/command"
	profileqry "github.com/Hiro-mackay/tripshare/internal/usecase/profile/query"
)

// ProfileHandler はプロファイル関連のHTTPハンドラーです
type ProfileHandler struct {
	// Queries
	getProfileQuery *profileqry.GetProfileQuery

	// Commands
	updateProfileCommand *profilecmd.UpdateProfileCommand
}

// NewProfileHandler は新しいProfileHandlerを作成します
func NewProfileHandler(
	getProfileQuery *profileqry.GetProfileQuery,
	updateProfileCommand *profilecmd.UpdateProfileCommand,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileQuery:      getProfileQuery,
		updateProfileCommand: updateProfileCommand,
	}
}

// GetProfile は現在のユーザーのプロファイルを取得します
// 初回アクセス時はトークンのクレームから作成します
// @Summary プロファイル取得
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.SwaggerProfileResponse
// @Failure 401 {object} handler.SwaggerErrorResponse
// @Router /me/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	requester, err := currentRequester(c)
	if err != nil {
		return err
	}

	output, err := h.getProfileQuery.Execute(c.Request().Context(), profileqry.GetProfileInput{
		UserID:      requester.UserID,
		DisplayName: requester.DisplayName,
		Email:       requester.Email,
		PhotoURL:    requester.PhotoURL,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToProfileResponse(output.Profile))
}

// UpdateProfile は現在のユーザーのプロファイルを更新します
// @Summary プロファイル更新
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body request.UpdateProfileRequest true "変更内容"
// @Success 200 {object} handler.SwaggerProfileResponse
// @Failure 400 {object} handler.SwaggerErrorResponse
// @Failure 401 {object} handler.SwaggerErrorResponse
// @Router /me/profile [patch]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	requester, err := currentRequester(c)
	if err != nil {
		return err
	}

	var req request.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.updateProfileCommand.Execute(c.Request().Context(), profilecmd.UpdateProfileInput{
		UserID:      requester.UserID,
		Email:       requester.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToProfileResponse(output.Profile))
}
