package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	fileUsecases "medrecords/internal/application/medicalfile/usecases"
	userUsecases "medrecords/internal/application/user/usecases"
	"medrecords/internal/domain/blob"
	"medrecords/internal/infrastructure/auth"
	"medrecords/internal/infrastructure/config"
	"medrecords/internal/infrastructure/repository"
	"medrecords/internal/interfaces/http/handlers"
	"medrecords/internal/interfaces/http/middleware"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/db"
	"medrecords/internal/shared/logger"
)

// Container holds repositories, use cases, handlers and middleware, wired
// against one database and one blob store.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	store  blob.Store
	log    logger.Interface
	clock  biztime.Clock

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	sessionMiddleware *middleware.SessionMiddleware
}

type repositories struct {
	userRepo        *repository.UserRepository
	sessionRepo     *repository.SessionRepository
	medicalFileRepo *repository.MedicalFileRepository
	txManager       *db.TransactionManager
}

type allUseCases struct {
	signup         *userUsecases.SignupUseCase
	login          *userUsecases.LoginUseCase
	logout         *userUsecases.LogoutUseCase
	resolveSession *userUsecases.ResolveSessionUseCase
	getUser        *userUsecases.GetUserUseCase
	updateProfile  *userUsecases.UpdateProfileUseCase
	sweepSessions  *userUsecases.SweepExpiredSessionsUseCase

	uploadFile *fileUsecases.UploadFileUseCase
	listFiles  *fileUsecases.ListFilesUseCase
	fetchFile  *fileUsecases.FetchFileUseCase
	deleteFile *fileUsecases.DeleteFileUseCase
}

type allHandlers struct {
	authHandler       *handlers.AuthHandler
	profileHandler    *handlers.ProfileHandler
	fileHandler       *handlers.FileHandler
	staticFileHandler *handlers.StaticFileHandler
	healthHandler     *handlers.HealthHandler
}

// NewContainer wires everything together. A nil clock means wall time.
func NewContainer(gdb *gorm.DB, cfg *config.Config, store blob.Store, clock biztime.Clock, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		store:  store,
		log:    log,
		clock:  clock.OrDefault(),
	}

	c.initRepositories()
	c.initUseCases()
	c.initHandlers()

	return c
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		userRepo:        repository.NewUserRepository(c.db, c.log),
		sessionRepo:     repository.NewSessionRepository(c.db),
		medicalFileRepo: repository.NewMedicalFileRepository(c.db, c.log),
		txManager:       db.NewTransactionManager(c.db),
	}
}

func (c *Container) initUseCases() {
	r := c.repos
	storageCfg := c.cfg.Storage
	hasher := auth.NewPasswordHasher(c.cfg.Auth.Password)
	tokens := auth.NewSessionTokenGenerator()

	filePolicy := blob.NewUploadPolicy(storageCfg.MaxFileSize, storageCfg.AllowedExtensions, storageCfg.AllowedContentTypes)
	picturePolicy := blob.NewUploadPolicy(storageCfg.MaxProfileImageSize, storageCfg.AllowedImageExtensions, storageCfg.AllowedImageContentTypes)

	c.ucs = &allUseCases{
		signup: userUsecases.NewSignupUseCase(r.userRepo, hasher, c.clock, c.log),
		login: userUsecases.NewLoginUseCase(
			r.userRepo,
			r.sessionRepo,
			hasher,
			tokens,
			r.txManager,
			c.cfg.Auth.Session.Lifetime(),
			c.clock,
			c.log,
		),
		logout:         userUsecases.NewLogoutUseCase(r.sessionRepo, tokens, c.log),
		resolveSession: userUsecases.NewResolveSessionUseCase(r.userRepo, r.sessionRepo, tokens, c.clock, c.log),
		getUser:        userUsecases.NewGetUserUseCase(r.userRepo, c.log),
		updateProfile:  userUsecases.NewUpdateProfileUseCase(r.userRepo, c.store, picturePolicy, c.log),
		sweepSessions:  userUsecases.NewSweepExpiredSessionsUseCase(r.sessionRepo, c.clock, c.log),

		uploadFile: fileUsecases.NewUploadFileUseCase(r.medicalFileRepo, c.store, filePolicy, c.clock, c.log),
		listFiles:  fileUsecases.NewListFilesUseCase(r.medicalFileRepo, c.log),
		fetchFile:  fileUsecases.NewFetchFileUseCase(r.medicalFileRepo, c.store, c.log),
		deleteFile: fileUsecases.NewDeleteFileUseCase(r.medicalFileRepo, c.store, c.log),
	}
}

func (c *Container) initHandlers() {
	u := c.ucs
	storageCfg := c.cfg.Storage

	c.sessionMiddleware = middleware.NewSessionMiddleware(u.resolveSession, c.log)

	var healthHandler *handlers.HealthHandler
	if sqlDB, err := c.db.DB(); err == nil {
		healthHandler = handlers.NewHealthHandler(sqlDB, c.log)
	} else {
		c.log.Warnw("database handle unavailable, health check will skip ping", "error", err)
		healthHandler = handlers.NewHealthHandler(nil, c.log)
	}

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(
			u.signup,
			u.login,
			u.logout,
			u.getUser,
			c.cfg.Auth.Cookie,
			c.cfg.Auth.Session.Lifetime(),
			c.log,
		),
		profileHandler:    handlers.NewProfileHandler(u.updateProfile, storageCfg.MaxProfileImageSize, c.log),
		fileHandler:       handlers.NewFileHandler(u.uploadFile, u.listFiles, u.fetchFile, u.deleteFile, storageCfg.MaxFileSize, c.log),
		staticFileHandler: handlers.NewStaticFileHandler(c.store, c.log),
		healthHandler:     healthHandler,
	}
}
