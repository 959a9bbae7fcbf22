package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-darkframe-inspector/internal/config"
	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/logger"
	"go-darkframe-inspector/internal/service"
	"go-darkframe-inspector/pkg/models"
)

// NewHandler builds the HTTP surface: a health probe and single-frame
// analysis for QA stations that push frames one at a time.
func NewHandler(svc *service.BatchService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeFrame(svc, cfg))

	return r
}

func analyzeFrame(svc *service.BatchService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		// Log request start
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing frame analysis request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := svc.AnalyzeOne(ctx, req.Source)
		if err != nil {
			var analyzeErr *apperrors.AppError
			if errors.Is(err, context.DeadlineExceeded) {
				analyzeErr = apperrors.NewTimeoutError("Frame analysis timeout", err)
			} else if appErr, ok := err.(*apperrors.AppError); ok {
				analyzeErr = appErr
			} else {
				analyzeErr = apperrors.NewProcessingError("Frame analysis failed", err)
			}

			logger.WithError(analyzeErr).WithFields(logrus.Fields{
				"source": req.Source,
				"ip":     c.ClientIP(),
			}).Error("Failed to analyze frame")

			respondError(c, analyzeErr.StatusCode, "failed to analyze frame", analyzeErr)
			return
		}

		// Log successful completion
		logger.WithFields(logrus.Fields{
			"source":              req.Source,
			"processing_time_sec": result.ProcessingTimeSec,
			"verdict":             result.Verdict.Status,
			"quality_class":       result.QualityClass,
			"hot_pixel_count":     result.Defects.HotPixelCount,
			"dead_pixel_count":    result.Defects.DeadPixelCount,
		}).Info("Frame analysis completed successfully")

		c.JSON(http.StatusOK, models.AnalyzeResponse{
			Source:            req.Source,
			Timestamp:         result.Timestamp.UTC().Format(time.RFC3339Nano),
			ProcessingTimeSec: result.ProcessingTimeSec,
			Width:             result.Width,
			Height:            result.Height,
			DeclaredBitDepth:  result.DeclaredBitDepth,
			Stats:             result.Stats,
			Defects:           result.Defects,
			SNR:               result.SNR,
			Verdict:           result.Verdict,
			QualityClass:      result.QualityClass,
			Recommendation:    result.Recommendation,
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
