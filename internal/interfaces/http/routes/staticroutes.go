package routes

import (
	"github.com/gin-gonic/gin"

	"medrecords/internal/interfaces/http/handlers"
)

// StaticRouteConfig holds dependencies for public routes.
type StaticRouteConfig struct {
	StaticFileHandler *handlers.StaticFileHandler
	HealthHandler     *handlers.HealthHandler
}

// SetupStaticRoutes configures the unauthenticated routes.
func SetupStaticRoutes(engine *gin.Engine, cfg *StaticRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.HealthCheck)
	engine.GET("/staticfiles/*path", cfg.StaticFileHandler.Serve)
	engine.HEAD("/staticfiles/*path", cfg.StaticFileHandler.Serve)
}
