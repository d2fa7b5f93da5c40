package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

const userContextKey = "authUser"

// logRequests records one line per request with the resulting status.
func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
		)
		return err
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
// Returns "" when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(common.AuthorizationHeader)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth validates the bearer token and stores the claims-derived user
// in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request())
		if token == "" {
			return c.JSON(http.StatusUnauthorized, messageBody("Missing token"))
		}

		user, err := s.users.ParseAccessToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, messageBody("Invalid token"))
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// requireAdmin rejects callers without the ADMIN role. Must run after
// requireAuth.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !callerFrom(c).IsAdmin() {
			return c.JSON(http.StatusForbidden, messageBody("Admin access required"))
		}
		return next(c)
	}
}

// callerFrom returns the authenticated user set by requireAuth.
func callerFrom(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
