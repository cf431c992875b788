package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/model"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the account endpoints. The open endpoints (register,
// verification, login, refresh) sit behind the rate limiter; /user sits
// behind the first two guard-chain stages. An access token plus an active
// account is enough to read the profile, so no role guard is applied there.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens *auth.TokenService, users auth.UserStore, limiter echo.MiddlewareFunc) {
	open := e.Group("", limiter)
	open.POST("/register", a.Register)
	open.POST("/verify-email", a.VerifyEmail)
	open.POST("/again-send-code", a.ResendCode)
	open.POST("/token", a.Login)
	open.POST("/refresh-token", a.Refresh)

	user := e.Group("/user")
	user.Use(middleware.JWTAuth(tokens, users))
	user.Use(middleware.RequireActive())
	user.GET("", a.Me)
}

// RegisterPosts wires the posts resource. Reading free posts is public;
// premium reads require the VIP_CLIENT role and mutations require ADMIN.
// Guard ordering is authenticated -> active -> role on every gated route.
func RegisterPosts(e *echo.Echo, p *handler.PostHandler, tokens *auth.TokenService, users auth.UserStore) {
	g := e.Group("/post")
	g.GET("/read", p.Read)

	authed := g.Group("")
	authed.Use(middleware.JWTAuth(tokens, users))
	authed.Use(middleware.RequireActive())

	vip := authed.Group("")
	vip.Use(middleware.RequireRole(model.RoleVIPClient))
	vip.GET("/read-premium", p.ReadPremium)

	admin := authed.Group("")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/add", p.Add)
	admin.DELETE("/delete/:id", p.Delete)
}
