package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"fiyattakip/internal/api/handlers"
	"fiyattakip/internal/api/middleware"
	"fiyattakip/internal/config"
	"fiyattakip/internal/scraper/workers"
	"fiyattakip/internal/store"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, poolManager *workers.PoolManager, snapshots *store.SnapshotStore) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(poolManager, snapshots))
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/workers", handlers.WorkerHealthHandler(poolManager))
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/track", handlers.TrackHandler(cfg, poolManager, snapshots))
		v1.GET("/history", handlers.HistoryHandler(snapshots))

		// Worker monitoring routes
		workersGroup := v1.Group("/workers")
		{
			workersGroup.GET("/stats", handlers.WorkerStatsHandler(poolManager))
		}

		// Domain-specific routes
		domains := v1.Group("/domains")
		{
			domains.GET("/:domain/stats", handlers.DomainStatsHandler(poolManager))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Fiyat Takip",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
