package main

import (
	"fmt"
	"os"

	"gateway-service/internal/handler"
	"gateway-service/internal/middleware"
	"gateway-service/internal/model"
	"gateway-service/internal/settlement"
	"gateway-service/internal/store"
	"gateway-service/pkg/config"
	"gateway-service/pkg/database"
	"gateway-service/pkg/logger"
	"gateway-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("gateway")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for gateway models
	if err := database.MigrateModels(&model.Merchant{}, &model.Order{}, &model.Payment{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Seed the well-known test merchant
	if err := database.SeedTestMerchant(); err != nil {
		log.Fatal("Failed to seed test merchant")
	}

	gatewayStore := store.New(db)

	// Settlement executor simulates async settlement of created payments
	policy := settlement.NewRandomPolicy(conf.Settlement.UPISuccessRate, conf.Settlement.CardSuccessRate)
	settlements := settlement.NewExecutor(gatewayStore, policy, conf.Settlement.MinDelay, conf.Settlement.MaxDelay, log)
	defer settlements.Stop()

	h := handler.New(gatewayStore, settlements)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Public routes
	e.GET("/", handler.Root)
	e.GET("/health", h.Health)
	e.GET("/test-luhn/:card", handler.TestLuhn)

	api := e.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/testmerchant", h.TestMerchant)

	// Secured routes - require merchant API credentials
	secured := api.Group("")
	secured.Use(middleware.MerchantAuth(gatewayStore))

	secured.POST("/orders", h.CreateOrder)
	secured.GET("/orders/:orderId", h.GetOrder)
	secured.POST("/payments", h.CreatePayment)
	secured.GET("/payments/:id", h.GetPayment)

	// Start server
	log.Info("Starting gateway-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
