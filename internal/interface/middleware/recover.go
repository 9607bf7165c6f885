package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Recover はハンドラーのパニックをINTERNAL_ERRORに変換します
// http.ErrAbortHandlerは接続を切るためそのまま再送出します
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				logger.Error(c.Request().Context(), "handler panicked",
					"method", c.Request().Method,
					"route", c.Path(),
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				err = apperror.NewInternalError(fmt.Errorf("panic in %s %s: %v", c.Request().Method, c.Path(), r))
			}()

			return next(c)
		}
	}
}
