package helpers

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientKey identifies the caller for inbound rate limiting.
func ClientKey(c echo.Context) string {
	if ip := strings.TrimSpace(c.RealIP()); ip != "" {
		return ip
	}
	return "unknown"
}
