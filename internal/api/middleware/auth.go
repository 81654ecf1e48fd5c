package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth validates the bearer token and injects the caller's id and role into context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}
