package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/scraper/workers"
	"fiyattakip/internal/store"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

var validate = validator.New()

// TrackHandler handles product tracking requests using the worker pool.
// The snapshot always comes back populated; a sentinel snapshot still
// yields HTTP 200 so clients can render the fallback state.
func TrackHandler(cfg *config.Config, poolManager *workers.PoolManager, snapshots *store.SnapshotStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.TrackRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Request validation failed", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Processing track request", map[string]interface{}{
			"url": req.URL,
		})

		ctx := c.Request().Context()
		result, err := poolManager.SubmitJob(ctx, req.URL, req.Options)
		if err != nil {
			logger.Error("Failed to submit job to worker pool", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "job_submission_failed",
				Message:   fmt.Sprintf("Failed to submit tracking job: %v", err),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		snapshot := result.Snapshot

		if snapshots != nil {
			if err := snapshots.SaveSnapshot(ctx, snapshot); err != nil {
				logger.Warn("Failed to persist snapshot", map[string]interface{}{
					"url":   req.URL,
					"error": err.Error(),
				})
			}
		}

		engine := "headed"
		if req.Options != nil && req.Options.Engine != "" {
			engine = req.Options.Engine
		}

		response := models.TrackResponse{
			Success:        !snapshot.Error,
			Snapshot:       snapshot,
			ProcessingTime: time.Since(startTime),
			Engine:         engine,
			RequestID:      requestID,
		}
		if snapshot.Error {
			response.Error = "page_acquisition_failed"
		}

		logger.Info("Track request completed", map[string]interface{}{
			"processing_time": time.Since(startTime).String(),
			"title":           snapshot.Title,
			"source":          snapshot.Source,
			"price":           snapshot.CurrentPrice,
			"engine":          engine,
			"success":         !snapshot.Error,
		})

		return c.JSON(http.StatusOK, response)
	}
}

// HistoryHandler returns the stored price history for a product URL
func HistoryHandler(snapshots *store.SnapshotStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		url := c.QueryParam("url")
		if url == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_url",
				Message:   "url query parameter is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		ctx := c.Request().Context()

		latest, err := snapshots.LatestSnapshot(ctx, url)
		if err != nil {
			logger.Error("Failed to read latest snapshot", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "store_unavailable",
				Message:   "Snapshot store is not available",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		history, err := snapshots.PriceHistory(ctx, url)
		if err != nil {
			logger.Error("Failed to read price history", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "store_unavailable",
				Message:   "Snapshot store is not available",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"url":        url,
			"latest":     latest,
			"history":    history,
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}
