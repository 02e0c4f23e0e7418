package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
)

// maxImageBytes caps the decoded image payload at 4MB, matching the limit
// the web client enforces on upload
const maxImageBytes = 4 * 1024 * 1024

// ScanAnalyzer is the usecase dependency of the HTTP layer
type ScanAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageDataURL string) (*domain.Diagnosis, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService ScanAnalyzer
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService ScanAnalyzer) *Handler {
	return &Handler{scanService: scanService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "biovalley-scanner",
		"version": "1.0.0",
	})
}

// AnalyzeScan handles one analysis request: validates the uploaded image,
// runs the scan pipeline, and returns the Diagnosis.
// Acquisition-tier failures (missing, malformed, or oversized image) are
// rejected here and never reach the model or the parser.
func (h *Handler) AnalyzeScan(c *gin.Context) {
	var req domain.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "image is required",
		})
		return
	}

	if err := validateImage(req.Image); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrImageTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": userFacingImageError(err)})
		return
	}

	diagnosis, err := h.scanService.AnalyzeImage(c.Request.Context(), req.Image)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, diagnosis)
}

// validateImage checks the acquisition-tier constraints on the uploaded
// data-URL image
func validateImage(image string) error {
	if image == "" {
		return domain.ErrInvalidRequest
	}

	if !strings.HasPrefix(image, "data:image/") {
		return domain.ErrInvalidRequest
	}

	// Estimate decoded size from the base64 payload without decoding it
	payload := image
	if idx := strings.Index(image, ","); idx >= 0 {
		payload = image[idx+1:]
	}
	if len(payload)/4*3 > maxImageBytes {
		return domain.ErrImageTooLarge
	}

	return nil
}

// userFacingImageError maps acquisition errors to short user-facing messages
func userFacingImageError(err error) string {
	if errors.Is(err, domain.ErrImageTooLarge) {
		return "File size too large. Please upload an image under 4MB."
	}
	return "A base64 image data URL is required."
}
