package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// HeaderRequestID はリクエストIDを受け渡すヘッダー
const HeaderRequestID = echo.HeaderXRequestID

const maxRequestIDLength = 64

// RequestID はリクエストIDをログ用コンテキストとレスポンスヘッダーに設定します
// クライアント指定のIDは英数字と "-_." のみ、64文字以内の場合に引き継ぎます
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if !validRequestID(id) {
				id = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, id)
			c.SetRequest(c.Request().WithContext(logger.ContextWithRequestID(c.Request().Context(), id)))
			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
