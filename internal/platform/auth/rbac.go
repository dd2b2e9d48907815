package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/pkg/records"
)

// RequireRole returns middleware that checks the session role is one of
// roles. Administrators always pass.
func RequireRole(roles ...records.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			has := RoleFromContext(c.Request().Context())
			if has == records.RoleAdministrator {
				return next(c)
			}
			for _, required := range roles {
				if has == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", roleList(roles)))
		}
	}
}

// RequireView applies the front-end view gating to a route group.
func RequireView(view string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if records.CanAccess(view, RoleFromContext(c.Request().Context())) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("access to %s denied", view))
		}
	}
}

func roleList(roles []records.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name()
	}
	return strings.Join(names, " or ")
}
