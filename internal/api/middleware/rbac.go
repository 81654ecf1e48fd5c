package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/core/domain"
)

// RBAC rejects callers whose role is not in allowedRoles with domain.ErrForbidden.
// It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return RBACWithError(domain.ErrForbidden, allowedRoles...)
}

// RBACWithError is RBAC with a caller-chosen rejection, so routes can report
// which role they expect (e.g. domain.ErrSeekerOnly).
func RBACWithError(denied error, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return denied
			}
			return next(c)
		}
	}
}
