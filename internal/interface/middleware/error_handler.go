package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		// 内部エラーの場合はログ出力
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "internal error", "error", appErr.Error())
		}

		_ = c.JSON(appErr.HTTPStatus, ErrorResponse{
			Error: ErrorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	// Echo HTTPErrorの場合（ルート未定義など）
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, ErrorResponse{
			Error: ErrorBody{
				Code:    httpErrorCode(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			},
		})
		return
	}

	// 未知のエラー
	logger.Error(c.Request().Context(), "unknown error", "error", err.Error())

	_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{
			Code:    string(apperror.CodeInternalError),
			Message: "internal server error",
		},
	})
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	case http.StatusTooManyRequests:
		return string(apperror.CodeRateLimitExceeded)
	default:
		if status >= http.StatusInternalServerError {
			return string(apperror.CodeInternalError)
		}
		return string(apperror.CodeValidationError)
	}
}
