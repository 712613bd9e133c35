// main.go
package main

import (
	"context"
	"log"
	"time"

	"business-cards/cmd"
	"business-cards/internal/data/repository"
	"business-cards/internal/data/repository/memory"
	"business-cards/internal/wire"
	"business-cards/pkg/database"
	"business-cards/pkg/telemetry"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
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
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, config.App.Name, config.App.OTelEndpoint)
	if err != nil {
		logger.Fatal("Failed to init tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	tokens, err := token.NewManager(config.JWT.Secret, config.JWT.TokenTTL())
	if err != nil {
		logger.Fatal("Failed to init token manager", zap.Error(err))
	}

	// Initialize all repositories
	var repos *repository.Repository
	if config.Database.Driver == "memory" {
		repos = memory.NewRepository()
		logger.Warn("Using in-memory store, data is lost on restart")
	} else {
		if err := database.RunMigrations(ctx, config.Database); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	if config.App.SeedData {
		if err := cmd.Seed(ctx, repos, config, logger); err != nil {
			logger.Fatal("Failed to seed data", zap.Error(err))
		}
	}

	// Wire all dependencies
	app := wire.Wiring(repos, tokens, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
