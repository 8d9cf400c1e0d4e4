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

	"github.com/labstack/echo/v4"

	"fiyattakip/internal/api/routes"
	"fiyattakip/internal/background"
	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/scraper/workers"
	"fiyattakip/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Fiyat Takip price tracker")

	// Snapshot store is optional; tracking still works without persistence
	snapshots := store.NewSnapshotStore(cfg)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := snapshots.Ping(pingCtx); err != nil {
		logger.Warn("Redis unavailable, snapshots will not be persisted", map[string]interface{}{
			"error": err.Error(),
		})
		snapshots = nil
	}
	pingCancel()
	if snapshots != nil {
		defer snapshots.Close()
	}

	poolManager := workers.NewPoolManager(cfg)
	if err := poolManager.Initialize(); err != nil {
		logger.Fatal("Failed to start worker pool", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer poolManager.Shutdown()

	var refresher *background.Refresher
	if cfg.Refresh.Enabled && snapshots != nil {
		refresher = background.NewRefresher(cfg, poolManager, snapshots)
		if err := refresher.Start(); err != nil {
			logger.Error("Failed to start background refresher", map[string]interface{}{
				"error": err.Error(),
			})
			refresher = nil
		}
	}

	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, poolManager, snapshots)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if refresher != nil {
			refresher.Stop()
		}

		if err := poolManager.Shutdown(); err != nil {
			logger.Error("Error stopping worker pool", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
