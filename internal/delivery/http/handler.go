package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/records"
	"github.com/pricelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	processingService *usecase.ProcessingService
}

// NewHandler creates a new HTTP handler
func NewHandler(processingService *usecase.ProcessingService) *Handler {
	return &Handler{processingService: processingService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": "1.0.0",
	})
}

// ProcessPromotions annotates a batch of scraped records with normalized
// pricing fields. The body may be a single record object or an array of
// records, mirroring the batch contract.
func (h *Handler) ProcessPromotions(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	batch, err := records.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMalformedBatch.Error()})
		return
	}

	processed, err := h.processingService.ProcessBatch(c.Request.Context(), batch)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedBatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(processed),
		"records": processed,
	})
}
