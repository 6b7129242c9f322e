package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver/middleware"
	tmocks "github.com/avatarctic/profile-lookup/test/mocks"
)

func TestCORSMiddleware_PreflightReturns200(t *testing.T) {
	e := echo.New()
	h := middleware.NewCORSMiddleware().Handler()(func(c echo.Context) error {
		t.Fatal("preflight must not reach the handler")
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/anything", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSMiddleware_SetsOriginOnEveryResponse(t *testing.T) {
	e := echo.New()
	h := middleware.NewCORSMiddleware().Handler()(func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRateLimitMiddleware_BlocksWhenNotAllowed(t *testing.T) {
	e := echo.New()
	var seenKey string
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		seenKey = clientKey
		return false, 0, 10, time.Unix(1700000000, 0), nil
	}}
	h := middleware.NewRateLimitMiddleware(limiter, logrus.New()).Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	err := h(e.NewContext(req, rec))
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, htErr.Code)
	require.Equal(t, "203.0.113.9", seenKey)
	require.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "1700000000", rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	e := echo.New()
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return true, 0, 10, time.Now(), errors.New("redis down")
	}}
	h := middleware.NewRateLimitMiddleware(limiter, logrus.New()).Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_NilLimiterPassesThrough(t *testing.T) {
	e := echo.New()
	h := middleware.NewRateLimitMiddleware(nil, nil).Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
