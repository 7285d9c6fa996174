package service

import (
	"errors"
	"fmt"
	"time"

	"wayfinder/internal/geojson"
	"wayfinder/internal/models"
	"wayfinder/internal/timeutil"
	"wayfinder/internal/trips"
)

// ErrNotFound reports a query range holding no data; handlers map it to 404.
var ErrNotFound = errors.New("no data in range")

// LocationStore is the location query surface the trip service needs.
// Satisfied by repository.LocationRepository.
type LocationStore interface {
	FetchSamples(filter models.LocationFilter) ([]models.LocationSample, error)
	CountLocations(start, end time.Time) (int64, error)
	CountTripLocations(start, end time.Time, desiredAccuracy int) (int64, error)
	FetchStationary(start, end time.Time) ([]models.LocationSample, error)
}

// VisitStore is the visit query surface the trip service needs.
// Satisfied by repository.VisitRepository.
type VisitStore interface {
	FetchVisits(filter models.VisitFilter) ([]models.Visit, error)
}

// TripPlotResponse is the body of GET /trips/plot.
type TripPlotResponse struct {
	Trips      geojson.FeatureCollection  `json:"trips"`
	Visits     geojson.FeatureCollection  `json:"visits"`
	Stationary *geojson.FeatureCollection `json:"stationary,omitempty"`
	Meta       models.TripPlotMeta        `json:"meta"`
	Pagination models.Pagination          `json:"pagination"`
}

// TripService builds paginated trip plots from the location and visit
// stores. Stateless: every request is a pure function of (range, cursor,
// options).
type TripService struct {
	locations LocationStore
	visits    VisitStore
}

// NewTripService creates a new trip service.
func NewTripService(locations LocationStore, visits VisitStore) *TripService {
	return &TripService{locations: locations, visits: visits}
}

// GetTripPlot serves one page of the trip plot for the requested range.
func (s *TripService) GetTripPlot(opts models.TripPlotOptions) (*TripPlotResponse, error) {
	totalLocations, err := s.locations.CountLocations(opts.Start, opts.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count locations: %w", err)
	}
	if totalLocations == 0 {
		return nil, ErrNotFound
	}

	tripLocationsRaw, err := s.locations.CountTripLocations(opts.Start, opts.End, opts.DesiredAccuracy)
	if err != nil {
		return nil, fmt.Errorf("failed to count trip locations: %w", err)
	}

	var bucket *trips.BucketSize
	if !opts.NoBucket {
		bucket = trips.ChooseBucket(opts.Start, opts.End, opts.PageSize)
	}

	visits, err := s.visits.FetchVisits(models.VisitFilter{Start: opts.Start, End: opts.End})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	// Midtimes are handed to the paginator only when segmentation is on:
	// without it a page boundary cannot split anything the client renders
	// as one feature.
	var midtimes []time.Time
	if opts.SeparateTrips {
		midtimes = trips.SortedMidtimes(visits)
	}

	page, err := trips.FetchPage(
		trips.PageRequest{Start: opts.Start, End: opts.End, Cursor: opts.Cursor, PageSize: opts.PageSize},
		midtimes,
		func(after *time.Time, limit int) ([]models.LocationSample, error) {
			filter := models.LocationFilter{
				Start:           opts.Start,
				End:             opts.End,
				After:           after,
				DesiredAccuracy: opts.DesiredAccuracy,
				ExcludeIdle:     true,
				Limit:           limit,
			}
			if bucket != nil {
				filter.BucketSeconds = bucket.Seconds
			}
			return s.locations.FetchSamples(filter)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	if opts.ColorTrips {
		trips.AssignColors(page.Samples, visits)
	}

	var segments []models.TripSegment
	if opts.SeparateTrips {
		segments = trips.Segment(page.Samples, visits)
	} else if len(page.Samples) > 0 {
		segments = []models.TripSegment{{ID: "trip_001", Samples: page.Samples}}
	}

	resp := &TripPlotResponse{
		Trips:  geojson.TripCollection(segments),
		Visits: geojson.NewFeatureCollection(),
	}
	if opts.ShowVisits {
		resp.Visits = geojson.VisitCollection(visits)
	}
	if opts.ShowStationary {
		stationary, err := s.locations.FetchStationary(opts.Start, opts.End)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stationary locations: %w", err)
		}
		fc := geojson.StationaryCollection(stationary)
		resp.Stationary = &fc
	}

	resp.Meta = models.TripPlotMeta{
		StartDatetime:    timeutil.FormatInstant(opts.Start),
		EndDatetime:      timeutil.FormatInstant(opts.End),
		TotalLocations:   totalLocations,
		TripLocations:    len(page.Samples),
		TripLocationsRaw: tripLocationsRaw,
		VisitsCount:      len(visits),
		TripsCount:       len(segments),
		SeparateTrips:    opts.SeparateTrips,
		ShowVisits:       opts.ShowVisits,
		Downsampled:      bucket != nil,
	}
	if bucket != nil {
		label := bucket.Label
		resp.Meta.BucketSize = &label
	}

	resp.Pagination = models.Pagination{
		PageSize:    opts.PageSize,
		HasMore:     page.HasMore,
		IsFirstPage: opts.Cursor == nil,
	}
	if page.NextCursor != nil {
		cursor := timeutil.FormatInstant(*page.NextCursor)
		resp.Pagination.NextCursor = &cursor
	}

	return resp, nil
}
