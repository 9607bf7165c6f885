package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/interface/dto/request"
	"github.com/Hiro-mackay/tripshare/internal/interface/dto/response"
	"github.com/Hiro-mackay/tripshare/internal/interface/presenter"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/query"
)

// GroupHandler はグループとメンバーシップ関連のHTTPハンドラーです
type GroupHandler struct {
	// Commands
	createGroupCmd         *command.CreateGroupCommand
	updateGroupSettingsCmd *command.UpdateGroupSettingsCommand
	deleteGroupCmd         *command.DeleteGroupCommand
	joinGroupByCodeCmd     *command.JoinGroupByCodeCommand
	leaveGroupCmd          *command.LeaveGroupCommand
	removeMemberCmd        *command.RemoveMemberCommand
	toggleAdminRoleCmd     *command.ToggleAdminRoleCommand

	// Queries
	getGroupQuery       *query.GetGroupQuery
	getGroupByCodeQuery *query.GetGroupByCodeQuery
	listMyGroupsQuery   *query.ListMyGroupsQuery
	listMembersQuery    *query.ListMembersQuery
}

// GroupHandlerDeps はGroupHandlerの依存関係です
type GroupHandlerDeps struct {
	CreateGroup         *command.CreateGroupCommand
	UpdateGroupSettings *command.UpdateGroupSettingsCommand
	DeleteGroup         *command.DeleteGroupCommand
	JoinGroupByCode     *command.JoinGroupByCodeCommand
	LeaveGroup          *command.LeaveGroupCommand
	RemoveMember        *command.RemoveMemberCommand
	ToggleAdminRole     *command.ToggleAdminRoleCommand
	GetGroup            *query.GetGroupQuery
	GetGroupByCode      *query.GetGroupByCodeQuery
	ListMyGroups        *query.ListMyGroupsQuery
	ListMembers         *query.ListMembersQuery
}

// NewGroupHandler は新しいGroupHandlerを作成します
func NewGroupHandler(deps GroupHandlerDeps) *GroupHandler {
	return &GroupHandler{
		createGroupCmd:         deps.CreateGroup,
		updateGroupSettingsCmd: deps.UpdateGroupSettings,
		deleteGroupCmd:         deps.DeleteGroup,
		joinGroupByCodeCmd:     deps.JoinGroupByCode,
		leaveGroupCmd:          deps.LeaveGroup,
		removeMemberCmd:        deps.RemoveMember,
		toggleAdminRoleCmd:     deps.ToggleAdminRole,
		getGroupQuery:          deps.GetGroup,
		getGroupByCodeQuery:    deps.GetGroupByCode,
		listMyGroupsQuery:      deps.ListMyGroups,
		listMembersQuery:       deps.ListMembers,
	}
}

// CreateGroup はグループを作成します
// @Summary グループ作成
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body request.CreateGroupRequest true "グループ情報"
// @Success 201 {object} handler.SwaggerGroupResponse
// @Failure 400 {object} handler.SwaggerErrorResponse
// @Failure 503 {object} handler.SwaggerErrorResponse
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req request.CreateGroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.createGroupCmd.Execute(c.Request().Context(), command.CreateGroupInput{
		Name:              req.Name,
		IsPrivate:         req.IsPrivate,
		AllowJoinRequests: req.AllowJoinRequests,
		CreatorID:         userID,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToGroupResponse(output.Group))
}

// ListMyGroups はユーザーが所属するグループ一覧を取得します
// @Summary 所属グループ一覧取得
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.SwaggerGroupListResponse
// @Router /groups [get]
func (h *GroupHandler) ListMyGroups(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	output, err := h.listMyGroupsQuery.Execute(c.Request().Context(), query.ListMyGroupsInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupListResponse(output.Groups))
}

// GetGroupByCode は参加コードでグループ概要を取得します
// @Summary 参加コードでグループ取得
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param code path string true "参加コード"
// @Success 200 {object} handler.SwaggerGroupPreviewResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Router /groups/code/{code} [get]
func (h *GroupHandler) GetGroupByCode(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	output, err := h.getGroupByCodeQuery.Execute(c.Request().Context(), query.GetGroupByCodeInput{
		Code:   c.Param("code"),
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupPreviewResponse(output.Group, output.IsMember))
}

// JoinGroupByCode は参加コードでグループに参加します
// 非公開グループの場合は参加リクエストが作成されます
// @Summary 参加コードで参加
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body request.JoinGroupByCodeRequest true "参加コード"
// @Success 200 {object} handler.SwaggerJoinGroupByCodeResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Failure 409 {object} handler.SwaggerErrorResponse
// @Failure 429 {object} handler.SwaggerErrorResponse
// @Router /groups/join [post]
func (h *GroupHandler) JoinGroupByCode(c echo.Context) error {
	requester, err := currentRequester(c)
	if err != nil {
		return err
	}

	var req request.JoinGroupByCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.joinGroupByCodeCmd.Execute(c.Request().Context(), command.JoinGroupByCodeInput{
		Code:      req.Code,
		Requester: requester,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}

	resp := response.JoinGroupByCodeResponse{Joined: output.Joined}
	if output.Joined {
		group := response.ToGroupResponse(output.Group)
		resp.Group = &group
	}
	if output.JoinRequest != nil {
		jr := response.ToJoinRequestResponse(output.JoinRequest)
		resp.JoinRequest = &jr
	}

	return presenter.OK(c, resp)
}

// GetGroup はグループを取得します
// @Summary グループ取得
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 200 {object} handler.SwaggerGroupDetailResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	output, err := h.getGroupQuery.Execute(c.Request().Context(), query.GetGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupDetailResponse(output.Group, output.IsMember, output.MyRole))
}

// UpdateGroupSettings はグループ設定を部分更新します
// @Summary グループ設定更新
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param body body request.UpdateGroupSettingsRequest true "変更内容"
// @Success 200 {object} handler.SwaggerGroupResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Router /groups/{id} [patch]
func (h *GroupHandler) UpdateGroupSettings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	var req request.UpdateGroupSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.updateGroupSettingsCmd.Execute(c.Request().Context(), command.UpdateGroupSettingsInput{
		GroupID:           groupID,
		ActorID:           userID,
		Name:              req.Name,
		IsPrivate:         req.IsPrivate,
		AllowJoinRequests: req.AllowJoinRequests,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGroupResponse(output.Group))
}

// DeleteGroup はグループを削除します（作成者のみ）
// @Summary グループ削除
// @Tags Groups
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	if _, err := h.deleteGroupCmd.Execute(c.Request().Context(), command.DeleteGroupInput{
		GroupID: groupID,
		ActorID: userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// ListMembers はメンバー一覧を取得します
// @Summary メンバー一覧取得
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 200 {object} handler.SwaggerMemberListResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/members [get]
func (h *GroupHandler) ListMembers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	output, err := h.listMembersQuery.Execute(c.Request().Context(), query.ListMembersInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToMemberListResponse(output.Members))
}

// LeaveGroup はグループから脱退します
// @Summary グループ脱退
// @Tags Members
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 422 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/leave [post]
func (h *GroupHandler) LeaveGroup(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	if _, err := h.leaveGroupCmd.Execute(c.Request().Context(), command.LeaveGroupInput{
		GroupID: groupID,
		UserID:  userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// RemoveMember はメンバーを削除します（管理者のみ）
// @Summary メンバー削除
// @Tags Members
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param userId path string true "対象ユーザーID"
// @Success 204 "No Content"
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 422 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	if _, err := h.removeMemberCmd.Execute(c.Request().Context(), command.RemoveMemberInput{
		GroupID:      groupID,
		TargetUserID: c.Param("userId"),
		ActorID:      userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// ToggleAdminRole は管理者権限を付与または剥奪します
// @Summary 管理者権限の変更
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "グループID" format(uuid)
// @Param userId path string true "対象ユーザーID"
// @Param body body request.ToggleAdminRoleRequest true "付与/剥奪"
// @Success 200 {object} handler.SwaggerToggleAdminRoleResponse
// @Failure 403 {object} handler.SwaggerErrorResponse
// @Failure 422 {object} handler.SwaggerErrorResponse
// @Router /groups/{id}/members/{userId}/admin [put]
func (h *GroupHandler) ToggleAdminRole(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	groupID, err := pathGroupID(c)
	if err != nil {
		return err
	}

	var req request.ToggleAdminRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.toggleAdminRoleCmd.Execute(c.Request().Context(), command.ToggleAdminRoleInput{
		GroupID:      groupID,
		TargetUserID: c.Param("userId"),
		ActorID:      userID,
		MakeAdmin:    *req.MakeAdmin,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToggleAdminRoleResponse{
		Group:   response.ToGroupResponse(output.Group),
		Changed: output.Changed,
	})
}
