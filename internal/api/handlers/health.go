package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fiyattakip/internal/scraper/workers"
	"fiyattakip/internal/store"
	"fiyattakip/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can accept tracking jobs
func ReadinessHandler(poolManager *workers.PoolManager, snapshots *store.SnapshotStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "ok",
		}
		status := "ready"
		httpStatus := http.StatusOK

		if poolManager.IsHealthy() {
			checks["workers"] = "ok"
		} else {
			checks["workers"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		if snapshots != nil {
			if err := snapshots.Ping(c.Request().Context()); err != nil {
				checks["redis"] = "unavailable"
			} else {
				checks["redis"] = "ok"
			}
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(httpStatus, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}
