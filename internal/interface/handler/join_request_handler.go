package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/interface/dto/request"
	"github.com/Hiro-mackay/tripshare/internal/interface/dto/response"
	"github.com/Hiro-mackay/tripshare/internal/interface/presenter"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/query"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// JoinRequestHandler は参加リクエスト関連のHTTPハンドラーです
type JoinRequestHandler struct {
	// Commands
	submitCmd  *command.SubmitJoinRequestCommand
	approveCmd *command.ApproveJoinRequestCommand
	rejectCmd  *command.RejectJoinRequestCommand

	// Queries
	listQuery  *query.ListJoinRequestsQuery
	countQuery *query.CountPendingJoinRequestsQuery
	mineQuery  *query.GetMyJoinRequestQuery
}

// NewJoinRequestHandler は新しいJoinRequestHandlerを作成します
func NewJoinRequestHandler(
	submitCmd *command.SubmitJoinRequestCommand,
	approveCmd *command.ApproveJoinRequestCommand,
	rejectCmd *command.RejectJoinRequestCommand,
	listQuery *query.ListJoinRequestsQuery,
	countQuery *query.CountPendingJoinRequestsQuery,
	mineQuery *query.GetMyJoinRequestQuery,
) *JoinRequestHandler {
	return &JoinRequestHandler{
		submitCmd:  submitCmd,
		approveCmd: approveCmd,
		rejectCmd:  rejectCmd,
		listQuery:  listQuery,
		countQuery: countQuery,
		mineQuery:  mineQuery,
	}
}

// Submit は参加リクエストを送信します
// @Summary 参加リクエスト送信
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param body body request.SubmitJoinRequestRequest false "メッセージ"
// @Success 201 {object} handler.SwaggerJoinRequestResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 409 {object} handler.SwaggerErrorResponse
// @Failure 429 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/join-requests [post]
func (h *JoinRequestHandler) Submit(c echo.Context) error {
	requester, err := currentRequester(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	var req request.SubmitJoinRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.submitCmd.Execute(c.Request().Context(), command.SubmitJoinRequestInput{
		GroupID:   groupID,
		Requester: requester,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToJoinRequestResponse(output.JoinRequest))
}

// List は保留中の参加リクエスト一覧を取得します（管理者のみ）
// @Summary 参加リクエスト一覧
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 200 {object} handler.SwaggerJoinRequestListResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/join-requests [get]
func (h *JoinRequestHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	output, err := h.listQuery.Execute(c.Request().Context(), query.ListJoinRequestsInput{
		GroupID: groupID,
		ActorID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToJoinRequestListResponse(output.JoinRequests))
}

// Count は保留中の参加リクエスト数を取得します（管理者のみ）
// @Summary 参加リクエスト件数
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 200 {object} handler.SwaggerCountResponse
// @Router /groups/{id}/join-requests/count [get]
func (h *JoinRequestHandler) Count(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	output, err := h.countQuery.Execute(c.Request().Context(), query.CountPendingJoinRequestsInput{
		GroupID: groupID,
		ActorID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.CountResponse{Count: output.Count})
}

// Mine は自分の保留中リクエストを取得します（無い場合はnull）
// @Summary 自分の参加リクエスト
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 200 {object} handler.SwaggerJoinRequestResponse
// @Router /groups/{id}/join-requests/me [get]
func (h *JoinRequestHandler) Mine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	output, err := h.mineQuery.Execute(c.Request().Context(), query.GetMyJoinRequestInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return presenter.OK(c, nil)
		}
		return err
	}

	return presenter.OK(c, response.ToJoinRequestResponse(output.JoinRequest))
}

// Approve は参加リクエストを承認します（管理者のみ）
// @Summary 参加リクエスト承認
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param requestId path string true "リクエストID" format(uuid)
// @Success 200 {object} handler.SwaggerApproveJoinRequestResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Failure 409 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/join-requests/{requestId}/approve [post]
func (h *JoinRequestHandler) Approve(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}
	requestID, err := pathUUID(c, "requestId", "join request ID")
	if err != nil {
		return err
	}

	output, err := h.approveCmd.Execute(c.Request().Context(), command.ApproveJoinRequestInput{
		GroupID:   groupID,
		RequestID: requestID,
		ActorID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ApproveJoinRequestResponse{
		JoinRequest:   response.ToJoinRequestResponse(output.JoinRequest),
		AlreadyMember: output.AlreadyMember,
	})
}

// Reject は参加リクエストを拒否します（管理者のみ）
// @Summary 参加リクエスト拒否
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param requestId path string true "リクエストID" format(uuid)
// @Success 200 {object} handler.SwaggerJoinRequestResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Failure 409 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/join-requests/{requestId}/reject [post]
func (h *JoinRequestHandler) Reject(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}
	requestID, err := pathUUID(c, "requestId", "join request ID")
	if err != nil {
		return err
	}

	output, err := h.rejectCmd.Execute(c.Request().Context(), command.RejectJoinRequestInput{
		GroupID:   groupID,
		RequestID: requestID,
		ActorID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToJoinRequestResponse(output.JoinRequest))
}
