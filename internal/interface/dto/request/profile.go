package request

// UpdateProfileRequest はプロファイル更新リクエストです
// photoUrlに空文字を指定すると写真を削除します
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=50"`
	PhotoURL    *string `json:"photoUrl" validate:"omitempty,max=2048"`
}
