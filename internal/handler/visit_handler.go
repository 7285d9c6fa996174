package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfinder/internal/models"
	"wayfinder/internal/service"
	"wayfinder/pkg/response"
)

// VisitHandler handles HTTP requests for visit plots.
type VisitHandler struct {
	service *service.VisitService
}

// NewVisitHandler creates a new visit handler.
func NewVisitHandler(service *service.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// GetVisitPlot handles GET /api/v1/visits/plot.
func (h *VisitHandler) GetVisitPlot(c *gin.Context) {
	var q models.VisitPlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	start, end, ok := parseRange(c, q.StartDatetime, q.EndDatetime)
	if !ok {
		return
	}

	resp, err := h.service.GetVisitPlot(start, end, q.IgnoreHome)
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "no visits found in the requested range")
		return
	}
	if err != nil {
		response.InternalError(c, "failed to build visit plot", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
