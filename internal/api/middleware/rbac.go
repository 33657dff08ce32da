package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits only operators whose token role is one of roles. It must run
// after Auth, which puts the role in the context.
func RBAC(roles ...string) echo.MiddlewareFunc {
	permitted := make(map[string]bool, len(roles))
	for _, r := range roles {
		permitted[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !permitted[role] {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": fmt.Sprintf("role %q may not manage registrations", role),
				})
			}
			return next(c)
		}
	}
}
