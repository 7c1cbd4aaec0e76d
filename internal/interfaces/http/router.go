// Package http assembles the gin engine of the medical records API.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medrecords/internal/domain/blob"
	"medrecords/internal/infrastructure/config"
	"medrecords/internal/infrastructure/scheduler"
	"medrecords/internal/interfaces/http/middleware"
	"medrecords/internal/interfaces/http/routes"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates the container and an engine without routes; call
// SetupRoutes before serving.
func NewRouter(db *gorm.DB, cfg *config.Config, store blob.Store, clock biztime.Clock, log logger.Interface) *Router {
	return &Router{Container: NewContainer(db, cfg, store, clock, log)}
}

// SetupRoutes installs the global middleware chain and every route group.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(r.sessionMiddleware.Resolve())

	routes.SetupStaticRoutes(r.engine, &routes.StaticRouteConfig{
		StaticFileHandler: r.hdlrs.staticFileHandler,
		HealthHandler:     r.hdlrs.healthHandler,
	})
	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:       r.hdlrs.authHandler,
		SessionMiddleware: r.sessionMiddleware,
	})
	routes.SetupProfileRoutes(r.engine, &routes.ProfileRouteConfig{
		ProfileHandler:    r.hdlrs.profileHandler,
		SessionMiddleware: r.sessionMiddleware,
	})
	routes.SetupFileRoutes(r.engine, &routes.FileRouteConfig{
		FileHandler:       r.hdlrs.fileHandler,
		SessionMiddleware: r.sessionMiddleware,
	})
}

// RegisterJobs adds the background maintenance jobs to the scheduler.
func (r *Router) RegisterJobs(m *scheduler.SchedulerManager) error {
	return m.RegisterSessionSweepJob(r.ucs.sweepSessions, r.cfg.Scheduler.SweepInterval())
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
