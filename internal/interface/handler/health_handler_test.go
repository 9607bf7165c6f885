package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Hiro-mackay/tripshare/internal/interface/handler"
)

func ready(t *testing.T, h *handler.HealthHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)
	assert.NoError(t, h.Ready(c))
	return rec
}

func TestHealthHandler_Ready_AllHealthy(t *testing.T) {
	h := handler.NewHealthHandler()
	h.RegisterChecker("store", handler.HealthCheckFunc(func(context.Context) error { return nil }))
	h.RegisterChecker("redis", handler.HealthCheckFunc(func(context.Context) error { return nil }))

	rec := ready(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestHealthHandler_Ready_OneUnhealthy_ServiceUnavailable(t *testing.T) {
	h := handler.NewHealthHandler()
	h.RegisterChecker("store", handler.HealthCheckFunc(func(context.Context) error { return nil }))
	h.RegisterChecker("nats", handler.HealthCheckFunc(func(context.Context) error { return errors.New("disconnected") }))

	rec := ready(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not_ready"`)
	assert.Contains(t, rec.Body.String(), "disconnected")
}

func TestHealthHandler_Check_AlwaysOK(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	assert.NoError(t, handler.NewHealthHandler().Check(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
