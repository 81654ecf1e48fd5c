package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/middleware"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// callerFrom reads the identity injected by the Auth middleware. A missing or
// malformed identity means the route was mounted without Auth; reject with 401
// rather than acting anonymously.
func callerFrom(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(domain.Role)
	if userID == "" || !role.Valid() {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{UserID: userID, Role: role}, nil
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
