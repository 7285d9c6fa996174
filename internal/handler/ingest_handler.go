package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfinder/internal/service"
	"wayfinder/pkg/response"
)

// IngestHandler handles the Overland ingest endpoint.
type IngestHandler struct {
	service *service.IngestService
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(service *service.IngestService) *IngestHandler {
	return &IngestHandler{service: service}
}

// PostOverland handles POST /api/v1/overland. The Overland app expects
// {"result": "ok"} on success.
func (h *IngestHandler) PostOverland(c *gin.Context) {
	var payload service.OverlandPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	result, err := h.service.Ingest(payload)
	if err != nil {
		response.InternalError(c, "failed to save batch", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":          "ok",
		"locations_saved": result.LocationsSaved,
		"visits_saved":    result.VisitsSaved,
		"skipped":         result.Skipped,
	})
}
