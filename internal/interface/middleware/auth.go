package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/jwt"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
)

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetIdentity はコンテキストから検証済みクレームを取得します
func GetIdentity(c echo.Context) *jwt.IdentityClaims {
	if claims, ok := c.Get(ContextKeyIdentity).(*jwt.IdentityClaims); ok {
		return claims
	}
	return nil
}

// SetIdentity はコンテキストに検証済みクレームを設定します
func SetIdentity(c echo.Context, claims *jwt.IdentityClaims) {
	c.Set(ContextKeyUserID, claims.UserID())
	c.Set(ContextKeyIdentity, claims)
}
