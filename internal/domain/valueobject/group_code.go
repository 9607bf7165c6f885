package valueobject

import (
	"errors"
	"strings"
)

const (
	GroupCodeLength   = 6
	GroupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrGroupCodeEmpty         = errors.New("group code cannot be empty")
	ErrGroupCodeInvalidLength = errors.New("group code must be 6 characters")
	ErrGroupCodeInvalidChar   = errors.New("group code may only contain letters and digits")
)

// GroupCode はグループ参加コードを表す値オブジェクト
// 入力は大文字に正規化されるため、呼び出し側から見て大文字小文字を区別しない
type GroupCode struct {
	value string
}

// NewGroupCode は文字列からGroupCodeを生成します
func NewGroupCode(code string) (GroupCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if normalized == "" {
		return GroupCode{}, ErrGroupCodeEmpty
	}

	if len(normalized) != GroupCodeLength {
		return GroupCode{}, ErrGroupCodeInvalidLength
	}

	for _, r := range normalized {
		if !strings.ContainsRune(GroupCodeAlphabet, r) {
			return GroupCode{}, ErrGroupCodeInvalidChar
		}
	}

	return GroupCode{value: normalized}, nil
}

// ReconstructGroupCode は永続化された値からGroupCodeを復元します（検証なし）
func ReconstructGroupCode(code string) GroupCode {
	return GroupCode{value: code}
}

// Value は値を返します
func (c GroupCode) Value() string {
	return c.value
}

// String は文字列を返します
func (c GroupCode) String() string {
	return c.value
}

// IsZero は未設定かどうかを判定します
func (c GroupCode) IsZero() bool {
	return c.value == ""
}

// Equals は等価性を判定します
func (c GroupCode) Equals(other GroupCode) bool {
	return c.value == other.value
}
