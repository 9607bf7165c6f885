package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPObserver はHTTPリクエストの計測値を受け取ります
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics はルート単位でリクエスト時間を記録するミドルウェアを返します
func Metrics(observer HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

			return nil
		}
	}
}
