package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medfi-backend/config"
	deliveryHttp "medfi-backend/internal/delivery/http"
	"medfi-backend/internal/delivery/http/handler"
	"medfi-backend/internal/delivery/http/middleware"
	"medfi-backend/internal/infrastructure/cache"
	"medfi-backend/internal/infrastructure/database"
	"medfi-backend/internal/infrastructure/media"
	"medfi-backend/internal/repository"
	"medfi-backend/internal/service"
	"medfi-backend/internal/usecase"
	"medfi-backend/pkg/jwt"
	"medfi-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Snapshots   *service.SnapshotService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize media store
	uploader, err := media.NewUploader(cfg.Cloudinary)
	if err != nil {
		return nil, fmt.Errorf("failed to configure media store: %w", err)
	}

	// Initialize all layers
	server, snapshots := initializeServer(cfg, db, redisClient, uploader)
	app.Server = server
	app.Snapshots = snapshots

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader *media.Uploader) (*http.Server, *service.SnapshotService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	adminRepo := repository.NewAdminRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	snapshots := service.NewSnapshotService(db, log, doctorRepo, redisClient)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, adminRepo, auditService, jwtService, redisClient)
	onboardingUsecase := usecase.NewOnboardingUsecase(db, log, doctorRepo, auditService, uploader, snapshots)
	reviewUsecase := usecase.NewReviewUsecase(db, log, doctorRepo, auditLogRepo, auditService, snapshots, redisClient)
	directoryUsecase := usecase.NewDirectoryUsecase(db, log, doctorRepo)
	patientUsecase := usecase.NewPatientProfileUsecase(db, log, patientRepo, auditService)

	// Seed the configured operator account
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := authUsecase.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
			logrus.Warnf("Failed to seed admin account: %v", err)
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUsecase, customValidator)
	reviewHandler := handler.NewReviewHandler(reviewUsecase, customValidator)
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	walletMiddleware := middleware.NewWalletMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, onboardingHandler, reviewHandler, directoryHandler, patientHandler, authMiddleware, walletMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, snapshots
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop live subscriptions before their backing connections go away
	if app.Snapshots != nil {
		app.Snapshots.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
