package routes

import (
	"github.com/gin-gonic/gin"

	"medrecords/internal/interfaces/http/handlers"
	"medrecords/internal/interfaces/http/middleware"
)

// FileRouteConfig holds dependencies for medical file routes.
type FileRouteConfig struct {
	FileHandler       *handlers.FileHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// SetupFileRoutes configures medical file routes. Every route requires a
// session; ownership is checked by the use cases.
func SetupFileRoutes(engine *gin.Engine, cfg *FileRouteConfig) {
	files := engine.Group("/files")
	files.Use(cfg.SessionMiddleware.RequireAuth())
	{
		files.POST("/upload", cfg.FileHandler.Upload)
		files.GET("", cfg.FileHandler.List)
		files.GET("/:id/view", cfg.FileHandler.View)
		files.GET("/:id/download", cfg.FileHandler.Download)
		files.DELETE("/:id", cfg.FileHandler.Delete)
	}
}
