package request

// CreateGroupRequest はグループ作成リクエストです
type CreateGroupRequest struct {
	Name              string `json:"name" validate:"required,groupname"`
	IsPrivate         bool   `json:"isPrivate"`
	AllowJoinRequests bool   `json:"allowJoinRequests"`
}

// UpdateGroupSettingsRequest はグループ設定の部分更新リクエストです
type UpdateGroupSettingsRequest struct {
	Name              *string `json:"name" validate:"omitempty,groupname"`
	IsPrivate         *bool   `json:"isPrivate"`
	AllowJoinRequests *bool   `json:"allowJoinRequests"`
}

// JoinGroupByCodeRequest は参加コードによる参加リクエストです
type JoinGroupByCodeRequest struct {
	Code    string  `json:"code" validate:"required,groupcode"`
	Message *string `json:"message" validate:"omitempty,max=500"`
}

// ToggleAdminRoleRequest は管理者権限の付与/剥奪リクエストです
type ToggleAdminRoleRequest struct {
	MakeAdmin *bool `json:"makeAdmin" validate:"required"`
}
