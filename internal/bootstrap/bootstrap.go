package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/devcamper/internal/app/controllers"
	appRepos "github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/app/repositories/memory"
	appRoutes "github.com/yigit/devcamper/internal/app/routes"
	appServices "github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/config"
	"github.com/yigit/devcamper/internal/db"
	appMiddleware "github.com/yigit/devcamper/internal/middleware"
	"github.com/yigit/devcamper/internal/pkg/logger"
	"github.com/yigit/devcamper/internal/pkg/metrics"
	"github.com/yigit/devcamper/internal/pkg/tracing"
	"github.com/yigit/devcamper/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	Services           *appServices.Services
	BootcampController *appControllers.BootcampController
	CourseController   *appControllers.CourseController
	HealthController   *appControllers.HealthController
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTracing installs the tracer provider when tracing is enabled
func SetupTracing(cfg *config.Config, lgr zerolog.Logger) (tracing.ShutdownFunc, error) {
	return tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Server.Mode,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, lgr)
}

// SetupDatabase opens the configured store and returns its repositories.
// The returned MongoDB is nil for the memory driver.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.MongoDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on shutdown")
		return memory.NewRepositories(), nil, nil
	}

	lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")
	database, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := database.EnsureIndexes(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to create indexes")
		_ = database.Close(context.Background())
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return appRepos.NewMongoRepositories(database.Database, cfg.Database.OperationTimeout), database, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.Services = appServices.NewServices(repos, appServices.Options{
		RecalculateTimeout: cfg.Database.OperationTimeout,
		AsyncRecalculation: true,
	})

	deps.BootcampController = appControllers.NewBootcampController(deps.Services.BootcampService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.HealthController = appControllers.NewHealthController(repos.Store)

	if cfg.Database.Seed {
		ctx := logger.WithContext(context.Background(), lgr)
		if err := seed.CreateDefaultData(ctx, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()

	if cfg.Tracing.Enabled {
		router.Use(tracing.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	router.Use(appMiddleware.ErrorHandler())
	router.NoRoute(appMiddleware.NoRoute)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.BootcampController,
		deps.CourseController,
		deps.HealthController,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "success": true})
	})

	return router
}
