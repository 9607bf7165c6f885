package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// readyTimeout は依存サービス1つあたりのチェック上限です
const readyTimeout = 3 * time.Second

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckFunc は関数をHealthCheckerとして扱います
type HealthCheckFunc func(ctx context.Context) error

// Health はHealthCheckerを実装します
func (f HealthCheckFunc) Health(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checkers: make(map[string]HealthChecker)}
}

// RegisterChecker はヘルスチェッカーを登録します
// 任意の依存（Redis, NATS, オブジェクトストレージ）は接続した場合のみ登録されます
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready は登録された依存サービスを並列に確認します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		services = make(map[string]ServiceStatus, len(h.checkers))
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := ServiceStatus{Status: "healthy"}
			if err := checker.Health(ctx); err != nil {
				status = ServiceStatus{Status: "unhealthy", Message: err.Error()}
			}
			mu.Lock()
			services[name] = status
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, s := range services {
		if s.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Services: services})
		}
	}
	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready", Services: services})
}
