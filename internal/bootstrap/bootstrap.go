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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/berkecan/unienroll/internal/app/controllers"
	appMigrations "github.com/berkecan/unienroll/internal/app/migrations"
	appRepos "github.com/berkecan/unienroll/internal/app/repositories"
	appRoutes "github.com/berkecan/unienroll/internal/app/routes"
	appServices "github.com/berkecan/unienroll/internal/app/services"
	"github.com/berkecan/unienroll/internal/config"
	"github.com/berkecan/unienroll/internal/db"
	appMiddleware "github.com/berkecan/unienroll/internal/middleware"
	pkgAuth "github.com/berkecan/unienroll/internal/pkg/auth"
	"github.com/berkecan/unienroll/internal/pkg/filestorage"
	"github.com/berkecan/unienroll/internal/pkg/helpers"
	"github.com/berkecan/unienroll/internal/pkg/logger"
	"github.com/berkecan/unienroll/internal/pkg/pdf"
	"github.com/berkecan/unienroll/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ProvisioningService *appServices.ProvisioningService
	AuthService         *appServices.AuthService
	EnrollmentService   *appServices.EnrollmentService
	PreferenceService   *appServices.PreferenceService
	CatalogService      *appServices.CatalogService
	TeacherService      *appServices.TeacherService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	TeacherController   *appControllers.TeacherController
	CatalogController   *appControllers.CatalogController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         *filestorage.LocalStorage
	RedisClient         *redis.Client
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the role registry.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	// Roles must exist before the first signup; demo catalog only fills an
	// empty database.
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		return nil, fmt.Errorf("seeding default data failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.RedisClient, err = db.NewRedisClient(cfg)
	if err != nil {
		// The catalog works without the cache; refuse to start only on a
		// misconfigured address, which this is.
		lgr.Error().Err(err).Msg("Failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if deps.RedisClient == nil {
		lgr.Info().Msg("Redis not configured, catalog cache disabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.ProvisioningService = appServices.NewProvisioningService(
		deps.Repos.RoleRepository,
		deps.Repos.AccountRepository,
		lgr,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.ProvisioningService,
		deps.Repos.AccountRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.SpecializationRepository,
		deps.RedisClient,
		cfg.GetCatalogTTL(),
		lgr,
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.StudentRepository,
		deps.Repos.SpecializationRepository,
		deps.Repos.ContractRepository,
		deps.Repos.GradeRepository,
		deps.CatalogService,
		pdf.NewContractRenderer("UniEnroll University"),
		deps.FileStorage,
		lgr,
	)

	deps.PreferenceService = appServices.NewPreferenceService(
		deps.Repos.StudentRepository,
		deps.Repos.SpecializationRepository,
		deps.Repos.PreferenceRepository,
		lgr,
	)

	deps.TeacherService = appServices.NewTeacherService(deps.Repos.TeacherRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.EnrollmentService, deps.PreferenceService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.TeacherController,
		deps.CatalogController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
