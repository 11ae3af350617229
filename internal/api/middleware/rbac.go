package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

// RBAC enforces that the request principal holds at least one of the allowed
// roles. A caller with no principal is unauthenticated; a caller present but
// lacking the role is forbidden, a distinct outcome.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := CurrentPrincipal(c)
			if !ok {
				return domain.ErrTokenAbsent
			}
			for _, role := range allowedRoles {
				if principal.HasRole(role) {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
