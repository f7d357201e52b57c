// main.go
package main

import (
	"context"
	"log"
	"time"

	"travel-booking/cmd"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/wire"
	"travel-booking/pkg/database"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.App.Location().String()),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if config.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	if err := repos.Session.CleanExpiredSessions(ctx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}

	// an empty RATE_LIMIT disables rate limiting
	var store limiter.Store
	if config.HTTP.RateLimit != "" {
		rate, err := middleware.ParseRate(config.HTTP.RateLimit)
		if err != nil {
			logger.Fatal("Invalid RATE_LIMIT", zap.Error(err))
		}
		if store, err = middleware.NewRateLimitStore(config.HTTP.RedisURL, rate.Period); err != nil {
			logger.Fatal("Failed to create rate limit store", zap.Error(err))
		}
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, logger, wire.Options{
		DB:             db,
		RateLimitStore: store,
	})
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if config.Bootstrap.StaffUsername != "" && config.Bootstrap.StaffPassword != "" {
		if err := app.Service.Auth.EnsureStaff(ctx, config.Bootstrap.StaffUsername, config.Bootstrap.StaffPassword); err != nil {
			logger.Fatal("Failed to bootstrap staff user", zap.Error(err))
		}
	}
	cancel()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
