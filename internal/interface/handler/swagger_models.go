package handler

import (
	"github.com/Hiro-mackay/tripshare/internal/interface/dto/response"
	"github.com/Hiro-mackay/tripshare/internal/interface/middleware"
)

// swagger:model を使って presenter.Response の interface{} を具体型に置き換える

// SwaggerGroupResponse は GroupResponse のラッパー
type SwaggerGroupResponse struct {
	Data response.GroupResponse `json:"data"`
}

// SwaggerGroupListResponse は GroupResponse 一覧のラッパー
type SwaggerGroupListResponse struct {
	Data []response.GroupResponse `json:"data"`
}

// SwaggerGroupDetailResponse は GroupDetailResponse のラッパー
type SwaggerGroupDetailResponse struct {
	Data response.GroupDetailResponse `json:"data"`
}

// SwaggerGroupPreviewResponse は GroupPreviewResponse のラッパー
type SwaggerGroupPreviewResponse struct {
	Data response.GroupPreviewResponse `json:"data"`
}

// SwaggerJoinGroupByCodeResponse は JoinGroupByCodeResponse のラッパー
type SwaggerJoinGroupByCodeResponse struct {
	Data response.JoinGroupByCodeResponse `json:"data"`
}

// SwaggerMemberListResponse は MemberResponse 一覧のラッパー
type SwaggerMemberListResponse struct {
	Data []response.MemberResponse `json:"data"`
}

// SwaggerToggleAdminRoleResponse は ToggleAdminRoleResponse のラッパー
type SwaggerToggleAdminRoleResponse struct {
	Data response.ToggleAdminRoleResponse `json:"data"`
}

// SwaggerJoinRequestResponse は JoinRequestResponse のラッパー
type SwaggerJoinRequestResponse struct {
	Data response.JoinRequestResponse `json:"data"`
}

// SwaggerJoinRequestListResponse は JoinRequestResponse 一覧のラッパー
type SwaggerJoinRequestListResponse struct {
	Data []response.JoinRequestResponse `json:"data"`
}

// SwaggerApproveJoinRequestResponse は ApproveJoinRequestResponse のラッパー
type SwaggerApproveJoinRequestResponse struct {
	Data response.ApproveJoinRequestResponse `json:"data"`
}

// SwaggerCountResponse は CountResponse のラッパー
type SwaggerCountResponse struct {
	Data response.CountResponse `json:"data"`
}

// SwaggerProfileResponse は ProfileResponse のラッパー
type SwaggerProfileResponse struct {
	Data response.ProfileResponse `json:"data"`
}

// SwaggerErrorResponse はエラーレスポンス
type SwaggerErrorResponse = middleware.ErrorResponse
