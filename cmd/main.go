package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-service/internal/handler"
	mid "storefront-service/internal/middleware"
	"storefront-service/internal/repository"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Install both data-access strategies behind the runtime selector
	initialMode, err := repository.ParseMode(appConfig.Repository.Mode)
	if err != nil {
		log.Warn("Invalid REPO_MODE, defaulting to orm", zap.Error(err))
	}
	if err := repository.Init(database.GetDB(), initialMode); err != nil {
		log.Fatal("Failed to initialize repositories", zap.Error(err))
	}
	prometheus.SetRepositoryMode(initialMode == repository.ModeProcedure)
	log.Info("Repositories initialized", zap.String("mode", initialMode.String()))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware(log))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/login", handler.Login)
	authAPI.POST("/register", handler.Register)

	// Product routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id/stock-status", handler.StockStatus)
	productAPI.GET("/sales-status", handler.ProductSalesStatus)

	// Order routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.POST("", handler.PlaceOrder)
	orderAPI.GET("/customer/:customerId", handler.CustomerOrders)

	// Reporting routes
	reportAPI := e.Group("/api/reports", mid.AuthMiddleware)
	reportAPI.GET("/customer-summaries", handler.CustomerOrderSummaries)
	reportAPI.GET("/top-customers", handler.TopCustomers)

	// Customer discount
	e.GET("/api/customers/:id/discount", handler.PotentialDiscount, mid.AuthMiddleware)

	// Settings routes
	settingsAPI := e.Group("/api/settings")
	settingsAPI.GET("/mode", handler.GetMode)
	settingsAPI.POST("/mode", handler.SetMode)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
