package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) Create(context.Context, string, string, string, model.Role, bool) (uint64, error) {
	panic("not used")
}

func (f *fakeUsers) Activate(context.Context, uint64) error { panic("not used") }

func testContext(t *testing.T, authz string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestJWTAuthResolvesUser(t *testing.T) {
	tokens := auth.NewTokenService("mw-secret", 15*time.Minute, 2*time.Hour)
	users := &fakeUsers{byEmail: map[string]model.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", Role: model.RoleClient, IsActive: true},
	}}

	access, err := tokens.IssueAccess("ada@example.com")
	require.NoError(t, err)

	var called bool
	c, _ := testContext(t, "Bearer "+access)
	err = JWTAuth(tokens, users)(func(c echo.Context) error {
		called = true
		u, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", u.Email)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestJWTAuthRejections(t *testing.T) {
	tokens := auth.NewTokenService("mw-secret", 15*time.Minute, 2*time.Hour)
	users := &fakeUsers{byEmail: map[string]model.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", Role: model.RoleClient, IsActive: true},
	}}

	refresh, err := tokens.IssueRefresh("ada@example.com")
	require.NoError(t, err)
	unknown, err := tokens.IssueAccess("ghost@example.com")
	require.NoError(t, err)
	expired, err := auth.NewTokenService("mw-secret", -time.Minute, -time.Minute).IssueAccess("ada@example.com")
	require.NoError(t, err)

	cases := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer nope"},
		{"refresh token as bearer", "Bearer " + refresh},
		{"unknown subject", "Bearer " + unknown},
		{"expired token", "Bearer " + expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			c, rec := testContext(t, tc.authz)
			err := JWTAuth(tokens, users)(okHandler(&called))(c)
			require.NoError(t, err)
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRequireActive(t *testing.T) {
	t.Run("active passes", func(t *testing.T) {
		var called bool
		c, _ := testContext(t, "")
		c.Set("user", model.User{ID: 1, IsActive: true})
		require.NoError(t, RequireActive()(okHandler(&called))(c))
		assert.True(t, called)
	})

	t.Run("inactive rejected", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "")
		c.Set("user", model.User{ID: 1, IsActive: false})
		require.NoError(t, RequireActive()(okHandler(&called))(c))
		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "inactive user")
	})

	t.Run("no user rejected", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "")
		require.NoError(t, RequireActive()(okHandler(&called))(c))
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("role in set passes", func(t *testing.T) {
		var called bool
		c, _ := testContext(t, "")
		c.Set("user", model.User{Role: model.RoleAdmin, IsActive: true})
		require.NoError(t, RequireRole(model.RoleAdmin)(okHandler(&called))(c))
		assert.True(t, called)
	})

	t.Run("client rejected by admin guard", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "")
		c.Set("user", model.User{Role: model.RoleClient, IsActive: true})
		require.NoError(t, RequireRole(model.RoleAdmin)(okHandler(&called))(c))
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		// The 403 names the role the operation wants.
		assert.Contains(t, rec.Body.String(), "ADMIN")
	})

	t.Run("admin rejected by vip guard", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "")
		c.Set("user", model.User{Role: model.RoleAdmin, IsActive: true})
		require.NoError(t, RequireRole(model.RoleVIPClient)(okHandler(&called))(c))
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

// The full chain: a valid token for an active CLIENT clears the first two
// stages and is then narrowed by the role guard.
func TestGuardChainOrdering(t *testing.T) {
	tokens := auth.NewTokenService("mw-secret", 15*time.Minute, 2*time.Hour)
	users := &fakeUsers{byEmail: map[string]model.User{
		"c@example.com": {ID: 2, Email: "c@example.com", Role: model.RoleClient, IsActive: true},
	}}

	access, err := tokens.IssueAccess("c@example.com")
	require.NoError(t, err)

	chain := func(last echo.MiddlewareFunc, h echo.HandlerFunc) echo.HandlerFunc {
		wrapped := h
		if last != nil {
			wrapped = last(wrapped)
		}
		wrapped = RequireActive()(wrapped)
		return JWTAuth(tokens, users)(wrapped)
	}

	t.Run("any active user guard accepts", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "Bearer "+access)
		require.NoError(t, chain(nil, okHandler(&called))(c))
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin-only guard rejects client", func(t *testing.T) {
		var called bool
		c, rec := testContext(t, "Bearer "+access)
		require.NoError(t, chain(RequireRole(model.RoleAdmin), okHandler(&called))(c))
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
