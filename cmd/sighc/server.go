package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sighc/sighc/internal/config"
	"github.com/sighc/sighc/internal/domain/audit"
	"github.com/sighc/sighc/internal/domain/clinical"
	"github.com/sighc/sighc/internal/domain/dashboard"
	"github.com/sighc/sighc/internal/domain/identity"
	"github.com/sighc/sighc/internal/domain/medication"
	"github.com/sighc/sighc/internal/domain/patient"
	"github.com/sighc/sighc/internal/domain/scheduling"
	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/internal/platform/cache"
	"github.com/sighc/sighc/internal/platform/db"
	"github.com/sighc/sighc/internal/platform/middleware"
)

func runServer() error {
	// Logger
	logger := newLogger(os.Stdout, os.Getenv("ENV"))

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Sessions
	key, err := cfg.SigningKey()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid session signing key")
	}
	sessions, err := auth.NewSessions(key, cfg.SessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session issuer")
	}

	// Dashboard cache
	var kv cache.KVStore = cache.NewMemory()
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, caching dashboard in memory")
		} else {
			defer client.Close()
			kv = cache.NewRedisKVStore(client, "sighc:")
			logger.Info().Msg("connected to redis")
		}
	}

	e := newServer(cfg, logger, pool, sessions, kv)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer builds the echo instance with middleware and every route.
func newServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool, sessions *auth.Sessions, kv cache.KVStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Domain services
	identitySvc := identity.NewService(identity.NewUserRepo(pool), identity.NewPhysicianRepo(pool), sessions)
	patientSvc := patient.NewService(patient.NewRepo(pool))
	schedulingSvc := scheduling.NewService(scheduling.NewRepo(pool))
	clinicalSvc := clinical.NewService(clinical.NewConsultationRepo(pool))
	medicationSvc := medication.NewService(medication.NewRepo(pool))
	auditSvc := audit.NewService(audit.NewRepo(pool))
	dashboardSvc := dashboard.NewService(dashboard.NewRepo(pool), kv, cfg.DashboardCacheTTL, logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware(sessions))
	} else {
		e.Use(auth.SessionMiddleware(sessions, auth.AuthSkipper))
	}

	// Access log; a successful write makes the cached dashboard stale.
	e.Use(middleware.AccessLog(logger, middleware.AccessRecorderFunc(func(entry middleware.AccessEntry) error {
		if entry.Action == "write" && entry.StatusCode < http.StatusBadRequest {
			dashboardSvc.Invalidate(context.Background())
		}
		return nil
	})))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Health check
	health := db.HealthHandler(pool)
	e.GET("/health", health)

	api := e.Group("/api")
	api.GET("/health", health)

	identity.NewHandler(identitySvc).RegisterRoutes(api)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(api)
	medication.NewHandler(medicationSvc).RegisterRoutes(api)
	audit.NewHandler(auditSvc).RegisterRoutes(api)

	return e
}
