package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/application/service"
	"github.com/sangkips/warehouse-api/internal/config"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/internal/infrastructure/database"
	"github.com/sangkips/warehouse-api/internal/infrastructure/identity"
	"github.com/sangkips/warehouse-api/internal/infrastructure/mirror"
	"github.com/sangkips/warehouse-api/internal/infrastructure/remote"
	infraRepo "github.com/sangkips/warehouse-api/internal/infrastructure/repository"
	"github.com/sangkips/warehouse-api/internal/presentation/http/handler"
	"github.com/sangkips/warehouse-api/internal/presentation/http/middleware"
	"github.com/sangkips/warehouse-api/internal/presentation/http/routes"
	"github.com/sangkips/warehouse-api/pkg/logger"
	"github.com/sangkips/warehouse-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Local mirror of receiving transactions
	var kv repository.KeyValueStore
	if cfg.Mirror.Driver == "redis" {
		rdb, err := database.NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		kv = mirror.NewRedisStore(rdb, cfg.Redis.Prefix)
	} else {
		kv = mirror.NewGormStore(db)
	}
	receivingMirror := mirror.New(kv, cfg.Mirror.Key)

	// Upstream inventory API, acting for the operator on the request context
	sessionIdentity := identity.NewContextIdentity()
	apiClient, err := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sessionIdentity)
	if err != nil {
		zapLogger.Fatal("Invalid API configuration", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	store := service.NewTransactionStore(apiClient, receivingMirror, zapLogger.Named("store"))
	registry := service.NewWorkflowRegistry(store, cfg.Receiving.DefaultWarehouseID, cfg.JWT.ExpiryHours, zapLogger.Named("receiving"))
	authService := service.NewAuthService(apiClient, jwtManager, service.FallbackAccount{
		ID:           cfg.Fallback.ID,
		Email:        cfg.Fallback.Email,
		Name:         cfg.Fallback.Name,
		Role:         cfg.Fallback.Role,
		PasswordHash: cfg.Fallback.PasswordHash,
	}, registry, zapLogger.Named("auth"))
	warehouseService := service.NewWarehouseService(apiClient, registry, zapLogger.Named("warehouse"))
	stockService := service.NewStockService(infraRepo.NewStockRepository(db))
	exportService := service.NewExportService()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessionIdentity),
		Receiving: handler.NewReceivingHandler(registry, exportService, cfg.Receiving.Suppliers, zapLogger),
		Warehouse: handler.NewWarehouseHandler(warehouseService),
		Stock:     handler.NewStockHandler(stockService),
	}

	done := make(chan struct{})
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	go rateLimiter.Run(done)
	go registry.Run(done)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		RateLimiter: rateLimiter,
		Logger:      zapLogger.Named("http"),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting server", zap.String("name", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
