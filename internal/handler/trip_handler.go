package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wayfinder/internal/models"
	"wayfinder/internal/service"
	"wayfinder/internal/timeutil"
	"wayfinder/pkg/response"
)

// TripHandler handles HTTP requests for trip plots.
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// parseRange validates the required start/end parameters shared by the
// plot endpoints. Responds with a 400 naming the offending parameter and
// returns false on failure.
func parseRange(c *gin.Context, startRaw, endRaw string) (time.Time, time.Time, bool) {
	if startRaw == "" {
		response.BadRequest(c, "start_datetime is required")
		return time.Time{}, time.Time{}, false
	}
	if endRaw == "" {
		response.BadRequest(c, "end_datetime is required")
		return time.Time{}, time.Time{}, false
	}

	start, err := timeutil.ParseInstant("start_datetime", startRaw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}
	end, err := timeutil.ParseInstant("end_datetime", endRaw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// GetTripPlot handles GET /api/v1/trips/plot.
func (h *TripHandler) GetTripPlot(c *gin.Context) {
	var q models.TripPlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	start, end, ok := parseRange(c, q.StartDatetime, q.EndDatetime)
	if !ok {
		return
	}

	if q.DesiredAccuracy < 0 {
		response.BadRequest(c, "desired_accuracy must be >= 0")
		return
	}

	opts := models.TripPlotOptions{
		Start:           start,
		End:             end,
		ShowVisits:      q.ShowVisits,
		SeparateTrips:   q.SeparateTrips,
		ColorTrips:      q.ColorTrips,
		ShowStationary:  q.ShowStationary,
		DesiredAccuracy: q.DesiredAccuracy,
		PageSize:        q.PageSize,
		NoBucket:        q.NoBucket,
	}

	if q.Cursor != "" {
		cursor, err := timeutil.ParseInstant("cursor", q.Cursor)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		opts.Cursor = &cursor
	}

	if opts.PageSize < 1 || opts.PageSize > models.MaxPageSize {
		opts.PageSize = models.MaxPageSize
	}

	resp, err := h.service.GetTripPlot(opts)
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "no locations found in the requested range")
		return
	}
	if err != nil {
		response.InternalError(c, "failed to build trip plot", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
