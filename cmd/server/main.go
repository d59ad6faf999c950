package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recharge-transfers/internal/config"
	handlers "recharge-transfers/internal/handlers/shared"
	"recharge-transfers/internal/middleware"
	"recharge-transfers/internal/repositories/mongodb"
	"recharge-transfers/internal/services"
	"recharge-transfers/pkg/cache"
	"recharge-transfers/pkg/database"
	"recharge-transfers/pkg/logger"
	"recharge-transfers/pkg/maps"
	"recharge-transfers/pkg/sms"
	"recharge-transfers/pkg/websocket"
	"recharge-transfers/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndexes()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	var placesProvider maps.PlacesProvider
	if cfg.Maps.GoogleAPIKey != "" {
		placesProvider, err = maps.NewGoogleMapsProvider(cfg.Maps.GoogleAPIKey)
		if err != nil {
			appLogger.Fatalf("Failed to initialize maps provider: %v", err)
		}
	} else {
		appLogger.Warn("GOOGLE_MAPS_API_KEY not set; place search disabled, prices fall back to estimated distance")
	}

	var smsProvider sms.SMSProvider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.FromNumber)
	}

	wsHandler := websocket.NewHandler()

	bookingRepo := mongodb.NewBookingRepository(db.Database, redisCache)
	trackingRepo := mongodb.NewTrackingRepository(db.Database, redisCache)

	pricingService := services.NewPricingService(appLogger)
	notificationService := services.NewNotificationService(smsProvider, cfg.SMS, appLogger)
	bookingService := services.NewBookingService(bookingRepo, pricingService, notificationService, wsHandler, appLogger)
	trackingService := services.NewTrackingService(trackingRepo, wsHandler, appLogger)

	bookingHandler := handlers.NewBookingHandler(bookingService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	placeHandler := handlers.NewPlaceHandler(placesProvider, cfg.App.Country)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupBookingRoutes(v1, bookingHandler, pricingHandler, placeHandler)
		routes.SetupTrackingRoutes(v1, trackingHandler)
	}

	router.GET("/ws", wsHandler.HandleWebSocket)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server shutdown failed: %v", err)
	}
}
