package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly rejects callers whose token does not carry the admin flag.
// It must run after Auth, which sets is_admin in the request context.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get("is_admin").(bool)
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
