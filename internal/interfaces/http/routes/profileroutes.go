package routes

import (
	"github.com/gin-gonic/gin"

	"medrecords/internal/interfaces/http/handlers"
	"medrecords/internal/interfaces/http/middleware"
)

// ProfileRouteConfig holds dependencies for profile routes.
type ProfileRouteConfig struct {
	ProfileHandler    *handlers.ProfileHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// SetupProfileRoutes configures profile routes.
func SetupProfileRoutes(engine *gin.Engine, cfg *ProfileRouteConfig) {
	profile := engine.Group("/profile")
	profile.Use(cfg.SessionMiddleware.RequireAuth())
	{
		profile.PUT("/update", cfg.ProfileHandler.UpdateProfile)
	}
}
