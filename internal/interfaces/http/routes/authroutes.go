package routes

import (
	"github.com/gin-gonic/gin"

	"medrecords/internal/interfaces/http/handlers"
	"medrecords/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler       *handlers.AuthHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/signup", cfg.AuthHandler.Signup)
		auth.POST("/login", cfg.AuthHandler.Login)
		// logout works without a live session so stale cookies get cleared
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.SessionMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
	}
}
