package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/jwt"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// TokenVerifier はBearerトークンを検証します
type TokenVerifier interface {
	Verify(token string) (*jwt.IdentityClaims, error)
}

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
type JWTAuthMiddleware struct {
	verifier TokenVerifier
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(verifier TokenVerifier) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{verifier: verifier}
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダーを取得
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			// Bearer トークンを抽出
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return apperror.NewUnauthorizedError("invalid authorization header format")
			}

			// トークンを検証
			claims, err := m.verifier.Verify(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperror.NewTokenExpiredError()
				}
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			SetIdentity(c, claims)

			// リクエストコンテキストにも設定（UseCase層のログで使用）
			ctx := logger.ContextWithUserID(c.Request().Context(), claims.UserID())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
