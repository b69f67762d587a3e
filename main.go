package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/config"
	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/handlers"
	"github.com/pixalara/placement-service/internal/repositories/postgres"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
	"github.com/pixalara/placement-service/internal/validator"
	"github.com/pixalara/placement-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repoConfig := postgres.RepositoryConfig{
		DB:            db,
		RedisClient:   redisClient,
		CasdoorConfig: cfg.Casdoor,
	}
	repoManager := postgres.NewRepositoryManager(repoConfig)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize event publisher. Without brokers configured, events are
	// kept in memory and only logged.
	var eventPublisher events.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		eventPublisher, err = events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		log.Printf("Warning: KAFKA_BROKERS not set, using in-memory event publisher")
		eventPublisher = events.NewMockEventPublisher(slogLogger)
	}

	// Initialize auth provider
	provider := auth.NewCasdoorProvider(cfg.Casdoor)

	// Initialize services
	serviceManager, err := services.NewServiceManager(services.ServiceManagerConfig{
		Repository:      repoManager.GetRepository(),
		Provider:        provider,
		EventPublisher:  eventPublisher,
		Validator:       validator,
		Logger:          slogLogger,
		ProbeTimeout:    cfg.ProbeTimeout,
		DetectAmbiguity: cfg.DetectAmbiguity,
	})
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Note: Authentication middleware is applied per route group in SetupRoutes

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (closes the event publisher)
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close database and Redis connections
	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	logger.Info("Server exited")
}
