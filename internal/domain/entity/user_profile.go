package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DisplayNameFallbackLength はプロファイル未解決時に表示名として使うユーザーIDの長さ
	DisplayNameFallbackLength = 8
	MaxDisplayNameLength      = 50
)

var (
	ErrDisplayNameEmpty   = errors.New("display name cannot be empty")
	ErrDisplayNameTooLong = errors.New("display name must be 50 characters or less")
)

// UserProfile は外部IdPのユーザーに紐づく表示用プロファイル
type UserProfile struct {
	UserID      string
	DisplayName string
	Email       string
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUserProfile はIdPから得た情報で新しいプロファイルを作成します
// 表示名が無い場合はメールアドレスのローカル部、それも無い場合はユーザーIDの先頭8文字を使います
func NewUserProfile(userID, displayName, email string, photoURL *string) *UserProfile {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		name = FallbackDisplayName(userID)
	}

	now := time.Now()
	return &UserProfile{
		UserID:      userID,
		DisplayName: name,
		Email:       email,
		PhotoURL:    photoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FallbackUserProfile はプロファイルが取得できない場合の代替プロファイルを返します
// 表示名はユーザーIDの先頭8文字になります
func FallbackUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		DisplayName: FallbackDisplayName(userID),
	}
}

// FallbackDisplayName はユーザーIDから代替表示名を作ります
func FallbackDisplayName(userID string) string {
	runes := []rune(userID)
	if len(runes) > DisplayNameFallbackLength {
		return string(runes[:DisplayNameFallbackLength])
	}
	return userID
}

// ResolvedDisplayName は空でない表示名を返します
func (p *UserProfile) ResolvedDisplayName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return FallbackDisplayName(p.UserID)
}

// Update は表示名と写真URLを部分的に更新します
// 空文字の写真URLは写真の削除として扱います
func (p *UserProfile) Update(displayName, photoURL *string) error {
	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		if name == "" {
			return ErrDisplayNameEmpty
		}
		if utf8.RuneCountInString(name) > MaxDisplayNameLength {
			return ErrDisplayNameTooLong
		}
		p.DisplayName = name
	}
	if photoURL != nil {
		if *photoURL == "" {
			p.PhotoURL = nil
		} else {
			url := *photoURL
			p.PhotoURL = &url
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}
