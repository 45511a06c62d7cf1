// Package server wires services, handlers and middleware into the HTTP API.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"goldbook/internal/config"
	_ "goldbook/internal/docs" // Import swagger docs
	"goldbook/internal/handlers"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/middleware"
	"goldbook/internal/portfolio"
	"goldbook/internal/pricefeed"
	"goldbook/internal/services"
	"goldbook/internal/store"
	"goldbook/internal/uuid"
	"goldbook/internal/validator"
)

// New builds the API router over db. The server owns its database, so its
// gateway always runs in local mode.
func New(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	validator.Register()

	policy, err := portfolio.ParseSellPolicy(cfg.SellPolicy)
	if err != nil {
		return nil, err
	}

	gateway, err := ledger.NewGateway(ledger.ModeLocal, nil, store.NewGormStore(db, uuid.V7{}, ledger.SourceLocal))
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger gateway: %w", err)
	}

	issuer := identity.NewIssuer(cfg.JWTSecret, cfg.JWTExpirationDur)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	priceService := services.NewPriceService(db)
	feeds := []pricefeed.Feed{priceService}
	if cfg.GoldPricePerGram > 0 {
		feeds = append(feeds, pricefeed.NewStatic(cfg.GoldPricePerGram))
	}
	ledgerService := services.NewLedgerService(gateway, pricefeed.NewChain(feeds...),
		services.WithSellPolicy(policy),
		services.WithCurrency(cfg.Currency),
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, issuer)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(ledgerService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	priceHandler := handlers.NewPriceHandler(priceService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Pipeline routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/prices", priceHandler.RecordPrices)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(issuer))

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.RecordTransaction)
	transactions.GET("", transactionHandler.GetTransactionHistory)

	ledgerRoutes := protected.Group("/ledger")
	ledgerRoutes.GET("/transactions", ledgerHandler.ListRecords)
	ledgerRoutes.POST("/transactions", ledgerHandler.AppendRecord)

	prices := protected.Group("/prices")
	prices.GET("", priceHandler.ListPrices)
	prices.GET("/latest", priceHandler.GetLatestPrice)

	return router, nil
}
