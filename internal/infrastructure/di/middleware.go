package di

import (
	"github.com/Hiro-mackay/tripshare/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	// Redis未接続時はレート制限を無効化
	var limiter middleware.Limiter
	if c.RateLimiter != nil {
		limiter = c.RateLimiter
	}

	return &Middlewares{
		JWTAuth:   middleware.NewJWTAuthMiddleware(c.Verifier),
		RateLimit: middleware.NewRateLimitMiddleware(limiter),
	}
}
