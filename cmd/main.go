package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notion-blocks/blockmirror/broker"
	"notion-blocks/blockmirror/config"
	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/middleware"
	"notion-blocks/blockmirror/routes"
	"notion-blocks/blockmirror/services"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)

	db, err := database.Setup(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	if cfg.IntegrationName != "" && cfg.IntegrationSecret != "" {
		integration, err := authService.EnsureIntegration(db, cfg.IntegrationName, cfg.IntegrationSecret)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to seed integration")
		}
		logger.Log.Info().
			Str("integration_id", integration.ID.String()).
			Str("name", integration.Name).
			Msg("Integration ready")
	}

	blockService := services.NewBlockService(cfg.BlockMaxDepth)
	services.BlockServiceInstance = blockService

	// NATS is optional: without it events stay in the outbox and websocket
	// clients receive nothing.
	producer, err := broker.InitProducer(cfg)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("NATS producer unavailable, event dispatch is disabled")
	} else {
		defer producer.Close()

		eventHandlerService := services.NewEventHandlerService(db, producer,
			time.Duration(cfg.EventPollIntervalMs)*time.Millisecond)
		eventHandlerService.Start()
		defer eventHandlerService.Stop()
	}

	webSocketService := services.NewWebSocketService()
	consumer, err := broker.InitConsumer(cfg, []string{broker.BlockSubject}, "")
	if err != nil {
		logger.Log.Warn().Err(err).Msg("NATS consumer unavailable, websocket clients will not receive events")
	} else {
		defer consumer.Close()
		webSocketService.SetMessageChannel(consumer.GetMessageChannel())
	}
	webSocketService.Start()
	defer webSocketService.Stop()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORSMiddleware(cfg.Origins()))

	api := router.Group("/api/v1")
	routes.RegisterAuthRoutes(api, db, authService)
	routes.RegisterWebSocketRoutes(api, authService, webSocketService)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	routes.RegisterBlockRoutes(protected, db, blockService)
	if cfg.AppEnv == "development" {
		routes.SetupDebugRoutes(protected, db)
	}

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.AppPort).Msg("API server is running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shut down")
	}
}
