package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"callguard/internal/api"
	"callguard/internal/api/handlers"
	"callguard/internal/repository"
	"callguard/internal/service"
	"callguard/pkg/config"
	"callguard/pkg/logger"
	"callguard/pkg/postgres"

	"go.uber.org/zap"
)

// @title CallGuard API
// @version 1.0
// @description Real-time phone fraud detection via scam-case similarity search

// @contact.name API Support
// @contact.email support@callguard.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CallGuard service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	caseRepo := repository.NewCaseRepository(db, appLogger)
	encoder := service.NewHTTPEncoder(&cfg.Encoder, appLogger)
	detectionService := service.NewDetectionService(encoder, caseRepo, &cfg.RAG, appLogger)
	speechService := service.NewSpeechService(&cfg.ElevenLabs, appLogger)

	// Idempotent: a no-op when the index is already in place. On failure the
	// process exits and the next start retries.
	if err := detectionService.Bootstrap(ctx); err != nil {
		appLogger.Fatal("Failed to bootstrap similarity index", zap.Error(err))
	}

	analysisHandler := handlers.NewAnalysisHandler(detectionService, speechService, appLogger)
	caseHandler := handlers.NewCaseHandler(detectionService, appLogger)
	webhookHandler := handlers.NewWebhookHandler(detectionService, appLogger)

	app := api.SetupRouter(analysisHandler, caseHandler, webhookHandler, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
