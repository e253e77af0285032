// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/handler"
	"github.com/iliyamo/airport-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a refresh token in the body or a bearer
	// token. It is registered without the JWT middleware so a client
	// holding only a refresh token can still terminate its session;
	// the handler parses the Authorization header itself.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
