package main

import (
	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/handlers"
	"github.com/huangang/scenicadmin/internal/middleware"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
	"github.com/huangang/scenicadmin/internal/utils"
	"github.com/huangang/scenicadmin/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	db           *gorm.DB
	sessions     *session.Manager
	redisStore   *session.RedisStore
	retention    *services.LogRetention
	loginLimiter *middleware.RateLimiter
	authService  *services.AuthService

	authHandler      *handlers.AuthHandler
	areaHandler      *handlers.AreaHandler
	scenicHandler    *handlers.ScenicHandler
	travelsHandler   *handlers.TravelsHandler
	memberHandler    *handlers.MemberHandler
	systemLogHandler *handlers.SystemLogHandler
	uploadHandler    *handlers.UploadHandler
	healthHandler    *handlers.HealthHandler
}

// newSessionStore picks the configured backend, falling back to memory when
// Redis cannot be reached.
func newSessionStore(cfg *config.Config) (session.Store, *session.RedisStore) {
	if cfg.Session.Store == "redis" && cfg.Redis.Enabled {
		store, err := session.NewRedisStore(&cfg.Redis)
		if err == nil {
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis session store")
			return store, store
		}
		logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory sessions")
	}
	return session.NewMemoryStore(), nil
}

// buildServices wires services and handlers over an open database.
func buildServices(cfg *config.Config, db *gorm.DB, store session.Store) *appServices {
	sessions := session.NewManager(store, &cfg.Session)
	pages := handlers.NewPages(sessions)

	audit := services.NewAuditService(db)
	uploads := services.NewUploadService(services.LocalFileStore{}, &cfg.Upload)
	authService := services.NewAuthService(db, audit, &cfg.Admin)
	areaService := services.NewAreaService(db, audit)
	scenicService := services.NewScenicService(db, audit, uploads)
	travelsService := services.NewTravelsService(db, audit)
	memberService := services.NewMemberService(db, audit)

	return &appServices{
		db:           db,
		sessions:     sessions,
		retention:    services.NewLogRetention(db, cfg.Log.RetentionDays),
		loginLimiter: middleware.NewRateLimiter(cfg.Security.LoginRPS, cfg.Security.LoginBurst),
		authService:  authService,

		authHandler:      handlers.NewAuthHandler(authService, sessions, pages),
		areaHandler:      handlers.NewAreaHandler(areaService, pages),
		scenicHandler:    handlers.NewScenicHandler(scenicService, areaService, uploads, pages),
		travelsHandler:   handlers.NewTravelsHandler(travelsService, scenicService, pages),
		memberHandler:    handlers.NewMemberHandler(memberService, pages),
		systemLogHandler: handlers.NewSystemLogHandler(audit, pages),
		uploadHandler:    handlers.NewUploadHandler(uploads),
		healthHandler:    handlers.NewHealthHandler(db),
	}
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.Session.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database, cfg.Server.Mode == "debug"); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(models.GetDB()); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	store, redisStore := newSessionStore(cfg)
	app := buildServices(cfg, models.GetDB(), store)
	app.redisStore = redisStore

	// Create default admin user
	if err := app.authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Start log cleanup scheduler
	if err := app.retention.Start(cfg.Log.CleanupSpec); err != nil {
		logger.Warn().Err(err).Str("spec", cfg.Log.CleanupSpec).Msg("Failed to start log cleanup scheduler")
	}

	return app
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.retention.Stop()
	s.loginLimiter.Stop()
	logger.Info().Msg("All schedulers stopped")

	if s.redisStore != nil {
		if err := s.redisStore.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Redis session store")
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
