package main

import (
	"fmt"
	"os"

	"goldbook/internal/config"
	"goldbook/internal/database"
	"goldbook/internal/logger"
	"goldbook/internal/server"
)

// @title           Goldbook API
// @version         1.0
// @description     Goldbook records gold purchases and sales and values the resulting holdings at the current spot price.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router, err := server.New(dbManager.DB(), appConfig)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	log.Infow("Starting goldbook server",
		"port", appConfig.Port,
		"db_driver", appConfig.DBDriver,
		"sell_policy", appConfig.SellPolicy,
		"currency", appConfig.Currency,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
