package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/model"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Lifecycle *auth.Lifecycle
	Auth      *auth.Authenticator
	Tokens    *auth.TokenService
	Users     auth.UserStore
}

func NewAuthHandler(l *auth.Lifecycle, a *auth.Authenticator, t *auth.TokenService, u auth.UserStore) *AuthHandler {
	return &AuthHandler{Lifecycle: l, Auth: a, Tokens: t, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}
type verifyReq struct {
	Email string `json:"email" form:"email"`
	Code  string `json:"code" form:"code"`
}
type resendReq struct {
	Email string `json:"email" form:"email"`
}
type loginReq struct {
	Email    string `json:"email" form:"username"`
	Password string `json:"password" form:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// userResp is the outward shape of a user. The password hash never appears
// in any response.
type userResp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func toUserResp(u model.User) userResp {
	return userResp{Name: u.Name, Email: u.Email, Role: string(u.Role), IsActive: u.IsActive}
}

// Register creates a pending account and triggers its verification email.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Lifecycle.Register(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Reason})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// VerifyEmail consumes a verification code and activates the account.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Lifecycle.VerifyEmail(ctx, req.Email, req.Code); err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "successfully verified"})
}

// ResendCode reissues the verification code for a still-pending account.
func (h *AuthHandler) ResendCode(c echo.Context) error {
	var req resendReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Lifecycle.ResendCode(ctx, req.Email); err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent again"})
}

// Login verifies credentials and answers with an access/refresh token pair.
// Unknown email and wrong password produce byte-identical 401 bodies.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect email or password"})
		}
		return internalError(c)
	}

	access, err := h.Tokens.IssueAccess(u.Email)
	if err != nil {
		return internalError(c)
	}
	refresh, err := h.Tokens.IssueRefresh(u.Email)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	})
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated and stays valid until its own expiry.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	email, err := h.Tokens.Validate(strings.TrimSpace(req.RefreshToken), auth.TokenRefresh)
	if err != nil {
		return tokenUnauthorized(c)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// The subject must still resolve to a user; a token can outlive its
	// account only on paper.
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return tokenUnauthorized(c)
	}

	access, err := h.Tokens.IssueAccess(u.Email)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated account. Route guards already ensured the
// token is valid and the account is active.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return tokenUnauthorized(c)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// ----- helpers -----

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// lifecycleError maps account-lifecycle error kinds to transport statuses.
func lifecycleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnknownEmail),
		errors.Is(err, auth.ErrAlreadyVerified),
		errors.Is(err, auth.ErrCodeMismatch),
		errors.Is(err, auth.ErrCodeExpired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return internalError(c)
}

func tokenUnauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
