package service

import (
	"fmt"
	"time"

	"wayfinder/internal/geojson"
	"wayfinder/internal/models"
	"wayfinder/internal/spatial"
	"wayfinder/internal/timeutil"
)

// HomeFilter drops visits within Radius meters of the configured home
// location. Zero value disables filtering.
type HomeFilter struct {
	Latitude  float64
	Longitude float64
	Radius    float64
}

// Configured reports whether home coordinates are set.
func (h HomeFilter) Configured() bool {
	return h.Radius > 0 && (h.Latitude != 0 || h.Longitude != 0)
}

// VisitPlotResponse is the body of GET /visits/plot.
type VisitPlotResponse struct {
	Visits geojson.FeatureCollection `json:"visits"`
	Meta   models.VisitPlotMeta      `json:"meta"`
}

// VisitService serves visit feature collections.
type VisitService struct {
	visits VisitStore
	home   HomeFilter
}

// NewVisitService creates a new visit service.
func NewVisitService(visits VisitStore, home HomeFilter) *VisitService {
	return &VisitService{visits: visits, home: home}
}

// GetVisitPlot returns the visits in the range as Point features.
// ignoreHome additionally hides visits near the configured home location.
func (s *VisitService) GetVisitPlot(start, end time.Time, ignoreHome bool) (*VisitPlotResponse, error) {
	visits, err := s.visits.FetchVisits(models.VisitFilter{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}
	if len(visits) == 0 {
		return nil, ErrNotFound
	}

	if ignoreHome && s.home.Configured() {
		kept := visits[:0:0]
		for _, v := range visits {
			if !spatial.WithinRadius(v.Latitude, v.Longitude, s.home.Latitude, s.home.Longitude, s.home.Radius) {
				kept = append(kept, v)
			}
		}
		visits = kept
	}

	return &VisitPlotResponse{
		Visits: geojson.VisitCollection(visits),
		Meta: models.VisitPlotMeta{
			StartDatetime: timeutil.FormatInstant(start),
			EndDatetime:   timeutil.FormatInstant(end),
			VisitsCount:   len(visits),
		},
	}, nil
}
