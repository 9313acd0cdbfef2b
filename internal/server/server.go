package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yigit/scholars/internal/app/services"
	"github.com/yigit/scholars/internal/bootstrap"
	"github.com/yigit/scholars/internal/config"
	"github.com/yigit/scholars/internal/db"
	"github.com/yigit/scholars/internal/pkg/telemetry"
)

// Server holds the state for the HTTP server.
type Server struct {
	config        *config.Config
	router        *gin.Engine
	database      *db.PostgresDB
	redis         *redis.Client
	shutdownTrace telemetry.ShutdownFunc
	orchestrator  *services.CourseImportOrchestrator
	logger        zerolog.Logger
	http          *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	ctx := context.Background()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	shutdownTrace, err := bootstrap.SetupTelemetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		_ = shutdownTrace(ctx)
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	redisClient, courseCache := bootstrap.SetupCache(ctx, cfg, lgr)

	s := &Server{
		config:        cfg,
		database:      database,
		redis:         redisClient,
		shutdownTrace: shutdownTrace,
		logger:        lgr,
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, database, courseCache, lgr)
	if err != nil {
		s.closeResources(ctx)
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	s.orchestrator = deps.Orchestrator
	s.router = bootstrap.SetupRouter(cfg, deps, lgr)
	setupStaticFileServing(s.router, cfg, lgr)

	return s, nil
}

// setupStaticFileServing serves stored uploads such as slide audio
func setupStaticFileServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Server.StoragePath

	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create uploads directory")
		return
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for uploads directory")
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.config.Import.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeResources(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// closeResources releases everything except the HTTP listener and reports whether all closed cleanly
func (s *Server) closeResources(ctx context.Context) bool {
	ok := true

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Redis client close error")
			ok = false
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
	}

	if s.shutdownTrace != nil {
		if err := s.shutdownTrace(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Tracer provider shutdown error")
			ok = false
		}
	}

	return ok
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clean := true

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			clean = false
		}
	}

	if s.orchestrator != nil {
		if err := s.orchestrator.Drain(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Pending operator reports were not delivered before shutdown")
			clean = false
		}
	}

	if !s.closeResources(ctx) {
		clean = false
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if !clean {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
