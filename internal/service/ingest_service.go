package service

import (
	"fmt"
	"log"

	"wayfinder/internal/models"
	"wayfinder/internal/timeutil"
)

// OverlandPayload is the batch body posted by the Overland app: GeoJSON
// Point features whose properties distinguish visits (arrival_date) from
// plain location fixes.
type OverlandPayload struct {
	Locations []OverlandFeature `json:"locations"`
}

// OverlandFeature is one incoming GeoJSON feature.
type OverlandFeature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties OverlandProperties `json:"properties"`
}

// OverlandProperties is the union of location and visit property sets.
type OverlandProperties struct {
	Timestamp          string   `json:"timestamp"`
	ArrivalDate        string   `json:"arrival_date"`
	DepartureDate      string   `json:"departure_date"`
	Motion             []string `json:"motion"`
	Action             string   `json:"action"`
	Speed              float64  `json:"speed"`
	Altitude           float64  `json:"altitude"`
	HorizontalAccuracy int      `json:"horizontal_accuracy"`
	VerticalAccuracy   int      `json:"vertical_accuracy"`
	BatteryLevel       float64  `json:"battery_level"`
	BatteryState       string   `json:"battery_state"`
	Wifi               string   `json:"wifi"`
	DeviceID           string   `json:"device_id"`
}

// IngestResult summarizes one processed batch.
type IngestResult struct {
	LocationsSaved int64 `json:"locations_saved"`
	VisitsSaved    int64 `json:"visits_saved"`
	Skipped        int   `json:"skipped"`
}

// LocationWriter is the ingest surface of the location store.
type LocationWriter interface {
	InsertSamples(samples []models.LocationSample) (int64, error)
}

// VisitWriter is the ingest surface of the visit store.
type VisitWriter interface {
	InsertVisits(visits []models.Visit) (int64, error)
}

// IngestService validates and persists Overland batches.
type IngestService struct {
	locations LocationWriter
	visits    VisitWriter
}

// NewIngestService creates a new ingest service.
func NewIngestService(locations LocationWriter, visits VisitWriter) *IngestService {
	return &IngestService{locations: locations, visits: visits}
}

// Ingest splits a batch into visits and location samples and persists
// both. A visit is first reported at arrival without a departure date and
// re-sent complete when the user leaves, so departure-less visits are
// skipped rather than stored. Malformed features are skipped with a
// diagnostic; one bad feature never fails the batch.
func (s *IngestService) Ingest(payload OverlandPayload) (*IngestResult, error) {
	var samples []models.LocationSample
	var visits []models.Visit
	skipped := 0

	for _, f := range payload.Locations {
		if len(f.Geometry.Coordinates) < 2 {
			log.Printf("[ingest] warning: skipping feature without coordinates")
			skipped++
			continue
		}
		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]

		if f.Properties.ArrivalDate != "" {
			if f.Properties.DepartureDate == "" {
				// Open check-in; the complete visit arrives later.
				skipped++
				continue
			}
			arrival, err := timeutil.ParseInstant("arrival_date", f.Properties.ArrivalDate)
			if err != nil {
				log.Printf("[ingest] warning: %v", err)
				skipped++
				continue
			}
			departure, err := timeutil.ParseInstant("departure_date", f.Properties.DepartureDate)
			if err != nil {
				log.Printf("[ingest] warning: %v", err)
				skipped++
				continue
			}
			visits = append(visits, models.Visit{
				Arrival:            arrival,
				Departure:          departure,
				Longitude:          lon,
				Latitude:           lat,
				HorizontalAccuracy: f.Properties.HorizontalAccuracy,
				DeviceID:           f.Properties.DeviceID,
			})
			continue
		}

		t, err := timeutil.ParseInstant("timestamp", f.Properties.Timestamp)
		if err != nil {
			log.Printf("[ingest] warning: %v", err)
			skipped++
			continue
		}
		samples = append(samples, models.LocationSample{
			Time:               t,
			Longitude:          lon,
			Latitude:           lat,
			Altitude:           f.Properties.Altitude,
			HorizontalAccuracy: f.Properties.HorizontalAccuracy,
			VerticalAccuracy:   f.Properties.VerticalAccuracy,
			Speed:              f.Properties.Speed,
			Motion:             f.Properties.Motion,
			BatteryLevel:       f.Properties.BatteryLevel,
			BatteryState:       f.Properties.BatteryState,
			Wifi:               f.Properties.Wifi,
			DeviceID:           f.Properties.DeviceID,
		})
	}

	locationsSaved, err := s.locations.InsertSamples(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to save locations: %w", err)
	}
	visitsSaved, err := s.visits.InsertVisits(visits)
	if err != nil {
		return nil, fmt.Errorf("failed to save visits: %w", err)
	}

	log.Printf("[ingest] saved %d locations, %d visits (%d skipped)", locationsSaved, visitsSaved, skipped)

	return &IngestResult{
		LocationsSaved: locationsSaved,
		VisitsSaved:    visitsSaved,
		Skipped:        skipped,
	}, nil
}
