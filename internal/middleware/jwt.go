package middleware // middleware contains the reusable request guards

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
)

// userKey is the context key under which the resolved user record is stored.
const userKey = "user"

// JWTAuth is the first stage of the guard chain: it requires a valid Bearer
// access token whose subject resolves to an existing user, and stores that
// user in the request context for the later stages. Refresh tokens are
// rejected here because of the type discriminator inside the payload.
//
// Any failure — missing header, bad signature, elapsed expiry, wrong token
// type, unknown subject — answers 401 with the same body.
func JWTAuth(tokens *auth.TokenService, users auth.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			email, err := tokens.Validate(raw, auth.TokenAccess)
			if err != nil {
				return unauthorized(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByEmail(ctx, email)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuth. The bool is false when the
// guard did not run on this route.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userKey).(model.User)
	return u, ok
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
}
