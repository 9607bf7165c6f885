package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/di"
)

// Router はルート定義を管理します
type Router struct {
	echo           *echo.Echo
	handlers       *di.Handlers
	middlewares    *di.Middlewares
	metricsHandler http.Handler
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares, metricsHandler http.Handler) *Router {
	return &Router{
		echo:           e,
		handlers:       handlers,
		middlewares:    middlewares,
		metricsHandler: metricsHandler,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupOperationalRoutes()
	r.setupAPIRoutes()
}

// setupOperationalRoutes はヘルスチェックとメトリクスのルートを設定します（認証不要）
func (r *Router) setupOperationalRoutes() {
	if r.handlers.Health != nil {
		r.echo.GET("/health", r.handlers.Health.Check)
		r.echo.GET("/ready", r.handlers.Health.Ready)
	}
	if r.metricsHandler != nil {
		r.echo.GET("/metrics", echo.WrapHandler(r.metricsHandler))
	}
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1",
		r.middlewares.JWTAuth.Authenticate(),
		r.middlewares.RateLimit.ByUser(cache.RateLimitAPIDefault),
	)

	r.setupGroupRoutes(api)
	r.setupJoinRequestRoutes(api)
	r.setupProfileRoutes(api)
}

// setupGroupRoutes はグループとメンバーのルートを設定します
func (r *Router) setupGroupRoutes(api *echo.Group) {
	h := r.handlers.Group
	groups := api.Group("/groups")

	groups.POST("", h.CreateGroup)
	groups.GET("", h.ListMyGroups)
	groups.GET("/code/:code", h.GetGroupByCode,
		r.middlewares.RateLimit.ByUser(cache.RateLimitJoinByCode))
	groups.POST("/join", h.JoinGroupByCode,
		r.middlewares.RateLimit.ByUser(cache.RateLimitJoinByCode))

	groups.GET("/:id", h.GetGroup)
	groups.PATCH("/:id", h.UpdateGroupSettings)
	groups.DELETE("/:id", h.DeleteGroup)

	groups.GET("/:id/members", h.ListMembers)
	groups.POST("/:id/leave", h.LeaveGroup)
	groups.DELETE("/:id/members/:userId", h.RemoveMember)
	groups.PUT("/:id/members/:userId/admin", h.ToggleAdminRole)
}

// setupJoinRequestRoutes は参加リクエストのルートを設定します
func (r *Router) setupJoinRequestRoutes(api *echo.Group) {
	h := r.handlers.JoinRequest
	requests := api.Group("/groups/:id/join-requests")

	requests.POST("", h.Submit,
		r.middlewares.RateLimit.ByUser(cache.RateLimitJoinRequest))
	requests.GET("", h.List)
	requests.GET("/count", h.Count)
	requests.GET("/me", h.Mine)
	requests.POST("/:requestId/approve", h.Approve)
	requests.POST("/:requestId/reject", h.Reject)
}

// setupProfileRoutes は自分のプロファイルのルートを設定します
func (r *Router) setupProfileRoutes(api *echo.Group) {
	me := api.Group("/me")
	me.GET("/profile", r.handlers.Profile.GetProfile)
	me.PATCH("/profile", r.handlers.Profile.UpdateProfile)
}
