package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Logger はリクエストロギングミドルウェアを返します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// ステータスを確定させるためにエラーハンドラーを先に呼ぶ
				c.Error(err)
			}

			logger.Info(c.Request().Context(), "request",
				"method", c.Request().Method,
				"path", c.Path(),
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
				"bytes_out", c.Response().Size,
			)

			return nil
		}
	}
}
