package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfinder/internal/service"
	"wayfinder/pkg/response"
)

// ActivityHandler handles HTTP requests for the activity history.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetHistory handles GET /api/v1/activity/history.
func (h *ActivityHandler) GetHistory(c *gin.Context) {
	resp, err := h.service.GetHistory()
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "no activity recorded in the last 365 days")
		return
	}
	if err != nil {
		response.InternalError(c, "failed to build activity history", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
