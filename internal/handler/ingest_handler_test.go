package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfinder/internal/models"
	"wayfinder/internal/service"
)

type stubLocationWriter struct {
	saved int
}

func (s *stubLocationWriter) InsertSamples(samples []models.LocationSample) (int64, error) {
	s.saved += len(samples)
	return int64(len(samples)), nil
}

type stubVisitWriter struct {
	saved int
}

func (s *stubVisitWriter) InsertVisits(visits []models.Visit) (int64, error) {
	s.saved += len(visits)
	return int64(len(visits)), nil
}

func ingestRouter(locations *stubLocationWriter, visits *stubVisitWriter) *gin.Engine {
	h := NewIngestHandler(service.NewIngestService(locations, visits))
	r := gin.New()
	r.POST("/overland", h.PostOverland)
	return r
}

func TestPostOverland(t *testing.T) {
	locations := &stubLocationWriter{}
	visits := &stubVisitWriter{}
	r := ingestRouter(locations, visits)

	payload := `{
	  "locations": [
	    {
	      "type": "Feature",
	      "geometry": {"type": "Point", "coordinates": [8.54, 47.37]},
	      "properties": {"timestamp": "2024-01-01T10:00:00Z", "device_id": "phone"}
	    },
	    {
	      "type": "Feature",
	      "geometry": {"type": "Point", "coordinates": [8.55, 47.38]},
	      "properties": {
	        "arrival_date": "2024-01-01T09:00:00Z",
	        "departure_date": "2024-01-01T09:45:00Z"
	      }
	    }
	  ]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/overland", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result         string `json:"result"`
		LocationsSaved int64  `json:"locations_saved"`
		VisitsSaved    int64  `json:"visits_saved"`
		Skipped        int    `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ok", body.Result)
	assert.Equal(t, int64(1), body.LocationsSaved)
	assert.Equal(t, int64(1), body.VisitsSaved)
	assert.Zero(t, body.Skipped)
	assert.Equal(t, 1, locations.saved)
	assert.Equal(t, 1, visits.saved)
}

func TestPostOverlandMalformedBody(t *testing.T) {
	r := ingestRouter(&stubLocationWriter{}, &stubVisitWriter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/overland", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid payload")
}
