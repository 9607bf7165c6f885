package request

// SubmitJoinRequestRequest は参加リクエスト送信のリクエストです
type SubmitJoinRequestRequest struct {
	Message *string `json:"message" validate:"omitempty,max=500"`
}
