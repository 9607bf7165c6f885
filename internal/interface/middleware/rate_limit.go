package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Limiter はレート制限の判定を行います
type Limiter interface {
	Allow(ctx context.Context, identifier string, config cache.RateLimitConfig) (*cache.RateLimitResult, error)
}

// RateLimitMiddleware はレート制限ミドルウェアを提供します
// limiterがnilの場合は制限しません
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ByIP はIPアドレスでレート制限するミドルウェアを返します
func (m *RateLimitMiddleware) ByIP(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string { return c.RealIP() })
}

// ByUser はユーザーIDでレート制限するミドルウェアを返します
// ユーザーIDが無い場合はIPアドレスを使います
func (m *RateLimitMiddleware) ByUser(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		if userID := GetUserID(c); userID != "" {
			return userID
		}
		return c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(config cache.RateLimitConfig, identify func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.limiter == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			result, err := m.limiter.Allow(ctx, identify(c), config)
			if err != nil {
				// レート制限チェックに失敗した場合はリクエストを許可
				logger.Warn(ctx, "rate limit check failed", "type", config.Type, "error", err)
				return next(c)
			}

			setRateLimitHeaders(c, result)

			if !result.Allowed {
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

// setRateLimitHeaders はレート制限ヘッダーを設定します
func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))
}
