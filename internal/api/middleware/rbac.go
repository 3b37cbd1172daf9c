package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erosmarket/storefront/internal/core/domain"
)

// RequireRole enforces that the verified role claim matches one of the
// allowed roles. It must run after Auth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)

			var last error
			for _, required := range allowedRoles {
				if last = domain.Authorize(role, required); last == nil {
					return next(c)
				}
			}

			if errors.Is(last, domain.ErrUnauthenticated) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
