package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fiyattakip/internal/logging"
	"fiyattakip/internal/scraper/workers"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

// WorkerStatsHandler returns worker pool statistics
func WorkerStatsHandler(poolManager *workers.PoolManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		stats, err := poolManager.GetStats()
		if err != nil {
			logger.Error("Failed to get worker stats", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "stats_unavailable",
				Message:   "Worker pool statistics are not available",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"stats":      stats,
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}

// WorkerHealthHandler returns worker pool health status
func WorkerHealthHandler(poolManager *workers.PoolManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		healthy := poolManager.IsHealthy()
		status := "healthy"
		httpStatus := http.StatusOK

		if !healthy {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}

		return c.JSON(httpStatus, map[string]interface{}{
			"success":    healthy,
			"status":     status,
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}

// DomainStatsHandler returns rate limiting statistics for a specific domain
func DomainStatsHandler(poolManager *workers.PoolManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		domain := c.Param("domain")
		if domain == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_domain",
				Message:   "Domain parameter is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		stats, err := poolManager.GetDomainStats(domain)
		if err != nil {
			logger.Error("Failed to get domain stats", map[string]interface{}{
				"domain": domain,
				"error":  err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "stats_unavailable",
				Message:   "Domain statistics are not available",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"domain":     domain,
			"stats":      stats,
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}
