// Package main is the entry point for the consultation dashboard API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/config"
	"github.com/consultorio/dashboard-backend/internal/infra/cache"
	"github.com/consultorio/dashboard-backend/internal/infra/db"
	"github.com/consultorio/dashboard-backend/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting consultation dashboard API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"redis_enabled", cfg.Redis.Enabled,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")
	}

	// Initialize Redis when enabled; fall back to in-process coordination
	var redisClient *redis.Client
	var redisHealthChecker func() bool
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, using in-process coordination", "error", err)
			redisClient = nil
		} else {
			redisHealthChecker = cache.HealthChecker(redisClient)
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	injector, err := dependency.NewInjector(dependency.Options{
		Config:             cfg,
		DB:                 database.DB(),
		Redis:              redisClient,
		DBHealthChecker:    database.HealthCheck,
		RedisHealthChecker: redisHealthChecker,
	})
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Start background workers
	ctx, stop := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if cfg.Email.WorkerEnabled {
		workers.Add(1)
		go func() {
			defer workers.Done()
			injector.EmailWorker.Start(ctx)
		}()
	}

	if cfg.Reminder.Enabled {
		workers.Add(1)
		go func() {
			defer workers.Done()
			injector.ReminderScheduler.Start(ctx)
		}()
	}

	workers.Add(1)
	go func() {
		defer workers.Done()
		injector.RateLimiter.StartCleanup(ctx.Done())
	}()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stop()
	workers.Wait()

	slog.Info("Server exited properly")
}
