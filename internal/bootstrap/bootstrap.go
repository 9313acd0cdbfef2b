package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/scholars/internal/app/controllers"
	appMigrations "github.com/yigit/scholars/internal/app/migrations"
	appRepos "github.com/yigit/scholars/internal/app/repositories"
	appRoutes "github.com/yigit/scholars/internal/app/routes"
	appServices "github.com/yigit/scholars/internal/app/services"
	"github.com/yigit/scholars/internal/app/workflow"
	"github.com/yigit/scholars/internal/config"
	"github.com/yigit/scholars/internal/db"
	appMiddleware "github.com/yigit/scholars/internal/middleware"
	pkgAuth "github.com/yigit/scholars/internal/pkg/auth"
	"github.com/yigit/scholars/internal/pkg/cache"
	"github.com/yigit/scholars/internal/pkg/email"
	"github.com/yigit/scholars/internal/pkg/filestorage"
	"github.com/yigit/scholars/internal/pkg/helpers"
	"github.com/yigit/scholars/internal/pkg/logger"
	"github.com/yigit/scholars/internal/pkg/presentation"
	"github.com/yigit/scholars/internal/pkg/telemetry"
	"github.com/yigit/scholars/internal/seed"
)

// Version is reported in traces
const Version = "1.0.0"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	FileStorage      *filestorage.LocalStorage
	CourseCache      *cache.CourseCache
	Orchestrator     *appServices.CourseImportOrchestrator
	AuthService      *appServices.AuthService
	CourseService    *appServices.CourseService
	SlideService     *appServices.SlideService
	AuthMiddleware   *appMiddleware.AuthMiddleware
	AuthController   *appControllers.AuthController
	CourseController *appControllers.CourseController
	SlideController  *appControllers.SlideController
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: cfg.Telemetry.ServiceName,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTelemetry installs the tracer provider
func SetupTelemetry(ctx context.Context, cfg *config.Config) (telemetry.ShutdownFunc, error) {
	return telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     Version,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
}

// SetupDatabase establishes the database connection, runs migrations and seeds the operator account.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	migrationsDir := config.GetEnv("MIGRATIONS_DIR", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	operator := seed.Operator{Email: cfg.Seed.OperatorEmail, Password: cfg.Seed.OperatorPassword}
	if err := seed.EnsureOperator(ctx, appRepos.NewUserRepository(database.Pool), operator, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed operator account, proceeding anyway...")
	}

	return database, nil
}

// SetupCache connects to Redis when enabled. A failed connection disables caching instead of
// stopping startup.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*redis.Client, *cache.CourseCache) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Course cache disabled")
		return nil, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, course cache disabled")
		return nil, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CourseTTL).Msg("Course cache enabled")
	return client, cache.NewCourseCache(client, cfg.Redis.CourseTTL)
}

// setupPresentationSource builds the import backend
func setupPresentationSource(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (presentation.Source, error) {
	googleCfg := presentation.GoogleConfig{
		CredentialsFile: cfg.Import.CredentialsFile,
		APIKey:          cfg.Import.APIKey,
		Endpoint:        cfg.Import.Endpoint,
	}
	if !googleCfg.Configured() {
		lgr.Warn().Msg("No presentation import credentials configured, imports will fail")
		return presentation.Unavailable{}, nil
	}

	source, err := presentation.NewGoogleSlidesSource(ctx, googleCfg.ClientOptions()...)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// setupNotifier builds the operator exception notifier
func setupNotifier(cfg *config.Config, lgr zerolog.Logger) email.Notifier {
	mailer := email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.Notification.SMTPHost,
		Port:      cfg.Notification.SMTPPort,
		Username:  cfg.Notification.SMTPUsername,
		Password:  cfg.Notification.SMTPPassword,
		FromName:  cfg.Notification.FromName,
		FromEmail: cfg.Notification.FromEmail,
		UseTLS:    cfg.Notification.UseTLS,
		Timeout:   cfg.Notification.Timeout,
	}, lgr)
	return email.NewExceptionNotifier(mailer, cfg.AdminEmails(), lgr)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, courseCache *cache.CourseCache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, CourseCache: courseCache}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicBaseURL()+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	source, err := setupPresentationSource(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize presentation source")
		return nil, fmt.Errorf("failed to initialize presentation source: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	importer := appServices.NewPresentationImporter(source, deps.Repos.ImportRepository, cfg.Import.Timeout, lgr)
	deps.Orchestrator = appServices.NewCourseImportOrchestrator(deps.Repos.CourseRepository, importer, setupNotifier(cfg, lgr), lgr)

	var courseCacheIface appServices.CourseCache
	if courseCache != nil {
		courseCacheIface = courseCache
	}

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Orchestrator, courseCacheIface, lgr)
	deps.SlideService = appServices.NewSlideService(
		deps.Repos.SlideRepository,
		deps.Repos.CourseRepository,
		workflow.NewSlideMachine(workflow.Options{ClearAssigneeOnPublish: cfg.Workflow.ClearAssigneeOnPublish}),
		deps.FileStorage,
		cfg.Workflow.CompareAndSwap,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.SlideController = appControllers.NewSlideController(deps.SlideService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONTagNames()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		router.Use(telemetry.Middleware(cfg.Telemetry.ServiceName))
	}
	router.Use(appMiddleware.RequestContext(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router, strings.TrimPrefix(strings.TrimPrefix(cfg.PublicBaseURL(), "http://"), "https://"))

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:   deps.AuthController,
		Course: deps.CourseController,
		Slide:  deps.SlideController,
	}, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
