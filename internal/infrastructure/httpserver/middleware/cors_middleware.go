package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORSMiddleware opens the lookup API to every origin. Preflight requests are
// answered with 200 on any path, before routing.
type CORSMiddleware struct{}

func NewCORSMiddleware() *CORSMiddleware { return &CORSMiddleware{} }

func (m *CORSMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
			return c.NoContent(http.StatusOK)
		}
	}
}
