package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims は外部IdPが発行するIDトークンのクレームを定義します
type IdentityClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// UserID はIdP上のユーザーID（sub）を返します
func (c *IdentityClaims) UserID() string {
	return c.Subject
}
