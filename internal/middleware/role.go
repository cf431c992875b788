package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
)

// RequireActive is the second guard stage: the authenticated account must
// have completed email verification. The rejection is deliberately distinct
// from the 401 used for token failures; at this point the caller is known,
// so telling them the account is inactive leaks nothing.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return unauthorized(c)
			}
			if !u.IsActive {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "inactive user"})
			}
			return next(c)
		}
	}
}

// RequireRole is the third guard stage: the caller's role must be in the
// permitted set. The 403 names the roles the operation wants since this is
// post-authentication context and safe to disclose.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = true
		names = append(names, string(r))
	}
	msg := "requires role " + strings.Join(names, " or ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return unauthorized(c)
			}
			if !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": msg})
			}
			return next(c)
		}
	}
}
