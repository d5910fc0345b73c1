package main

import (
	"kennel-service/internal/booking"
	"kennel-service/internal/handler"
	"kennel-service/internal/middleware"
	"kennel-service/internal/model"
	"kennel-service/internal/notify"
	"kennel-service/internal/settings"
	"kennel-service/internal/tenant"
	"kennel-service/pkg/config"
	"kennel-service/pkg/database"
	"kennel-service/pkg/jwtutil"
	"kennel-service/pkg/logger"
	"kennel-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting kennel service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Run migrations
	if err := database.MigrateModels(
		&model.Tenant{},
		&model.Owner{},
		&model.Dog{},
		&model.Room{},
		&model.Booking{},
		&model.Payment{},
		&model.NotificationTemplate{},
		&model.ScheduledNotification{},
		&model.Setting{},
	); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Select the notification dispatcher. Kafka carries the events in
	// production; without a broker every dispatch is logged instead.
	var dispatcher notify.Dispatcher
	if cfg.Kafka.Enabled {
		kafkaDispatcher, err := notify.NewKafkaDispatcher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		defer kafkaDispatcher.Close()
		dispatcher = kafkaDispatcher
		log.Info("Kafka dispatcher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		dispatcher = &notify.LogDispatcher{Log: log}
		log.Info("Kafka disabled, logging notification dispatches")
	}

	// Wire services and handlers
	settingsStore := settings.NewStore(db)
	bookingService := booking.NewService(db, dispatcher, settingsStore)
	bookingHandler := handler.NewBookingHandler(bookingService)
	occupancyHandler := handler.NewOccupancyHandler(db)
	settingHandler := handler.NewSettingHandler(settingsStore)

	resolver := tenant.NewResolver(db, cfg.Tenant.DefaultTenantID, cfg.Tenant.BaseDomain)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// API routes - all require authentication and a resolved tenant
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)
	api.Use(resolver.Middleware())

	// Booking lifecycle
	bookings := api.Group("/bookings")
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.DELETE("", bookingHandler.Delete)
	bookings.GET("/unpaid", bookingHandler.ListUnpaid)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update)
	bookings.PATCH("/:id", bookingHandler.Update)

	// Calendar view
	api.GET("/occupancy", occupancyHandler.Day)

	// Client management
	owners := api.Group("/owners")
	owners.GET("", handler.ListOwners)
	owners.POST("", handler.CreateOwner)
	owners.GET("/:id", handler.GetOwner)

	dogs := api.Group("/dogs")
	dogs.GET("", handler.ListDogs)
	dogs.POST("", handler.CreateDog)

	// Facility management
	rooms := api.Group("/rooms")
	rooms.GET("", handler.ListRooms)
	rooms.POST("", handler.CreateRoom)

	// Payments
	payments := api.Group("/payments")
	payments.GET("", handler.ListPayments)
	payments.POST("", handler.CreatePayment)

	// Tenant settings
	api.GET("/settings", settingHandler.List)
	api.PUT("/settings", settingHandler.Put)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
