package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/hogwarts/school/internal/app/controllers"
	appMigrations "github.com/hogwarts/school/internal/app/migrations"
	appRepos "github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/app/repositories/gormstore"
	"github.com/hogwarts/school/internal/app/repositories/memory"
	appRoutes "github.com/hogwarts/school/internal/app/routes"
	appServices "github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/db"
	appMiddleware "github.com/hogwarts/school/internal/middleware"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/hogwarts/school/internal/seed"
)

// Store is the persistence backend selected by database.driver
type Store struct {
	Driver string
	Repos  *appRepos.Repositories
	Ping   appControllers.Pinger
	Close  func() error
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services          *appServices.Services
	StudentController *appControllers.StudentController
	FacultyController *appControllers.FacultyController
	HealthController  *appControllers.HealthController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured backend, brings its schema up to date and
// seeds the default faculties when enabled.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr = lgr.With().Str("driver", cfg.Database.Driver).Logger()

	var (
		store *Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = setupPostgres(ctx, cfg, lgr)
	case config.DriverSQLite:
		store, err = setupSQLite(cfg, lgr)
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		store = &Store{Repos: memory.NewRepositories(), Close: func() error { return nil }}
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}
	store.Driver = cfg.Database.Driver

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, store.Repos.FacultyRepository, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store, nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Store{
		Repos: appRepos.NewRepositories(database.Pool),
		Ping:  database.Ping,
		Close: func() error { database.Close(); return nil },
	}, nil
}

func setupSQLite(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("Opening SQLite database...")
	database, err := db.NewSQLiteDB(cfg.Database.SQLitePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open SQLite database")
		return nil, err
	}

	if err := gormstore.Migrate(database.DB); err != nil {
		closeErr := database.Close()
		return nil, errors.Join(err, closeErr)
	}

	sqlDB, err := database.DB.DB()
	if err != nil {
		return nil, errors.Join(err, database.Close())
	}

	return &Store{
		Repos: gormstore.NewRepositories(database.DB),
		Ping:  sqlDB.PingContext,
		Close: database.Close,
	}, nil
}

// BuildDependencies initializes services and controllers over the store.
func BuildDependencies(cfg *config.Config, store *Store, lgr zerolog.Logger) *Dependencies {
	svcs := appServices.NewServices(store.Repos, appServices.ExportSheets{
		Students:  cfg.Export.StudentSheet,
		Faculties: cfg.Export.FacultySheet,
	})

	return &Dependencies{
		Services:          svcs,
		StudentController: appControllers.NewStudentController(svcs.StudentService, svcs.ExportService),
		FacultyController: appControllers.NewFacultyController(svcs.FacultyService, svcs.StudentService, svcs.ExportService),
		HealthController:  appControllers.NewHealthController(store.Ping),
		Logger:            lgr,
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(cfg.Server.Mode, "test"):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	deps.Logger.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.Logger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.FacultyController,
		deps.HealthController,
	)

	return router
}
