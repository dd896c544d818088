package main

import (
	"alcyxob/exercise-lookup/internal/api"
	"alcyxob/exercise-lookup/internal/catalog"
	"alcyxob/exercise-lookup/internal/config"
	"alcyxob/exercise-lookup/internal/logging"
	"alcyxob/exercise-lookup/internal/repository/memory"
	"alcyxob/exercise-lookup/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Exercise Lookup API
// @version 1.0
// @description Search-as-you-type over a remote exercise catalog, plus in-memory selection lists.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		// Logger is not configured yet.
		logging.New(config.LogConfig{}, "exercise-lookup").Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, "exercise-lookup")
	logger.Info("configuration loaded",
		"address", cfg.Server.Address,
		"catalog_base_url", cfg.Catalog.BaseURL,
		"catalog_api_key_configured", cfg.Catalog.APIKeyConfigured(),
		"cache_ttl", cfg.Catalog.CacheTTL,
	)
	if !cfg.Catalog.APIKeyConfigured() {
		logger.Warn("catalog.api_key is not set, searches will use built-in sample exercises")
	}

	// --- Initialize Repositories ---
	selectionRepo := memory.NewSelectionRepository()

	// --- Initialize Services ---
	catalogClient := catalog.NewClient(cfg.Catalog, nil)
	lookupService := service.NewExerciseLookupService(catalogClient, cfg.Catalog, logger)
	selectionService := service.NewSelectionService(selectionRepo, logger)

	// --- Initialize Gin Engine ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(logger)
	api.SetupRoutes(router, cfg.Server.APIKey, lookupService, selectionService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
