package valueobject

import "errors"

var (
	ErrInvalidJoinRequestStatus = errors.New("invalid join request status")
)

// JoinRequestStatus は参加リクエストの状態を表す値オブジェクト
// pending -> approved / pending -> rejected のみ遷移可能で、approved/rejectedは終端状態
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusApproved JoinRequestStatus = "approved"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

// NewJoinRequestStatus は文字列からJoinRequestStatusを生成します
func NewJoinRequestStatus(status string) (JoinRequestStatus, error) {
	s := JoinRequestStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidJoinRequestStatus
	}
	return s, nil
}

// IsValid は状態が有効かを判定します
func (s JoinRequestStatus) IsValid() bool {
	switch s {
	case JoinRequestStatusPending, JoinRequestStatusApproved, JoinRequestStatusRejected:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (s JoinRequestStatus) String() string {
	return string(s)
}

// IsPending は保留中かを判定します
func (s JoinRequestStatus) IsPending() bool {
	return s == JoinRequestStatusPending
}

// IsFinal は終端状態かを判定します
func (s JoinRequestStatus) IsFinal() bool {
	return s == JoinRequestStatusApproved || s == JoinRequestStatusRejected
}
