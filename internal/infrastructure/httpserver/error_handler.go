package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const internalErrorMessage = "Internal server error"

// handleError renders every failure in the lookup envelope. Messages of
// unclassified errors never reach the client.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := s.statusFor(err)
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": status,
		}).Error("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, profile.LookupResponse{Success: false, Error: message})
	}
	if writeErr != nil && s.logger != nil {
		s.logger.WithError(writeErr).Warn("failed to write error response")
	}
}

func (s *Server) statusFor(err error) (int, string) {
	if le, ok := ports.AsLookupError(err); ok {
		return statusForLookupError(le)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		if he.Code >= http.StatusInternalServerError {
			msg = internalErrorMessage
		}
		return he.Code, msg
	}
	return http.StatusInternalServerError, internalErrorMessage
}

func statusForLookupError(le ports.LookupError) (int, string) {
	switch le.Code() {
	case ports.LookupCodeValidation:
		return http.StatusBadRequest, le.Message()
	case ports.LookupCodeRateLimited:
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	case ports.LookupCodeUpstream:
		status := le.UpstreamStatus()
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		return status, fmt.Sprintf("Failed to fetch profile (provider status %d)", le.UpstreamStatus())
	case ports.LookupCodeNotFound:
		return http.StatusNotFound, "Profile not found"
	case ports.LookupCodeMalformedPayload:
		return http.StatusBadGateway, "Invalid response from provider"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
