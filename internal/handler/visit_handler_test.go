package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfinder/internal/models"
	"wayfinder/internal/service"
)

func visitRouter(store *stubVisitStore, home service.HomeFilter) *gin.Engine {
	h := NewVisitHandler(service.NewVisitService(store, home))
	r := gin.New()
	r.GET("/visits/plot", h.GetVisitPlot)
	return r
}

func TestGetVisitPlotOK(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store := &stubVisitStore{visits: []models.Visit{
		{Arrival: base, Departure: base.Add(time.Hour), Longitude: 8.54, Latitude: 47.37, HorizontalAccuracy: 65},
	}}
	r := visitRouter(store, service.HomeFilter{})

	w := get(r, "/visits/plot?start_datetime=2024-01-01T00:00:00Z&end_datetime=2024-01-02T00:00:00Z")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Visits struct {
			Features []struct {
				ID         string `json:"id"`
				Properties struct {
					DurationS int64 `json:"duration_s"`
				} `json:"properties"`
			} `json:"features"`
		} `json:"visits"`
		Meta struct {
			VisitsCount int `json:"visits_count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Visits.Features, 1)
	assert.Equal(t, "visit_001", body.Visits.Features[0].ID)
	assert.Equal(t, int64(3600), body.Visits.Features[0].Properties.DurationS)
	assert.Equal(t, 1, body.Meta.VisitsCount)
}

func TestGetVisitPlotMissingRange(t *testing.T) {
	r := visitRouter(&stubVisitStore{}, service.HomeFilter{})

	w := get(r, "/visits/plot")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start_datetime is required")
}

func TestGetVisitPlotEmptyRangeIs404(t *testing.T) {
	r := visitRouter(&stubVisitStore{}, service.HomeFilter{})

	w := get(r, "/visits/plot?start_datetime=2024-01-01T00:00:00Z&end_datetime=2024-01-02T00:00:00Z")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no visits found in the requested range")
}
