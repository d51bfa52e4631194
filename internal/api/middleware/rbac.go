package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly enforces the admin gate on restock and delete routes. It must
// run after Auth; a resolved non-admin identity gets 403, a missing one 401.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFromContext(c)
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !identity.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
