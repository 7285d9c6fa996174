package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfinder/internal/models"
)

type fakeLocationStore struct {
	samples    []models.LocationSample
	stationary []models.LocationSample
	total      int64
	tripRaw    int64
	err        error

	lastFilter models.LocationFilter
}

func (f *fakeLocationStore) FetchSamples(filter models.LocationFilter) ([]models.LocationSample, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter

	var out []models.LocationSample
	for _, s := range f.samples {
		if filter.After != nil {
			if !s.Time.After(*filter.After) {
				continue
			}
		} else if s.Time.Before(filter.Start) {
			continue
		}
		if s.Time.After(filter.End) {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLocationStore) CountLocations(start, end time.Time) (int64, error) {
	return f.total, f.err
}

func (f *fakeLocationStore) CountTripLocations(start, end time.Time, desiredAccuracy int) (int64, error) {
	return f.tripRaw, f.err
}

func (f *fakeLocationStore) FetchStationary(start, end time.Time) ([]models.LocationSample, error) {
	return f.stationary, f.err
}

type fakeVisitStore struct {
	visits []models.Visit
	err    error
}

func (f *fakeVisitStore) FetchVisits(filter models.VisitFilter) ([]models.Visit, error) {
	return f.visits, f.err
}

func tripTestData() (*fakeLocationStore, *fakeVisitStore, models.TripPlotOptions) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var samples []models.LocationSample
	for m := 0; m < 6; m++ {
		samples = append(samples, models.LocationSample{
			Time:      base.Add(time.Duration(m) * time.Minute),
			Longitude: 8.5 + float64(m)/1000,
			Latitude:  47.4,
		})
	}

	locations := &fakeLocationStore{
		samples: samples,
		total:   int64(len(samples)),
		tripRaw: int64(len(samples)),
	}
	visits := &fakeVisitStore{visits: []models.Visit{
		{
			Arrival:   base.Add(2 * time.Minute),
			Departure: base.Add(4 * time.Minute), // midpoint at minute 3
			Longitude: 8.5,
			Latitude:  47.4,
		},
	}}
	opts := models.TripPlotOptions{
		Start:    base,
		End:      base.Add(time.Hour),
		PageSize: 100,
		NoBucket: true,
	}
	return locations, visits, opts
}

func TestGetTripPlotSingleTrip(t *testing.T) {
	locations, visits, opts := tripTestData()
	svc := NewTripService(locations, visits)

	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)

	require.Len(t, resp.Trips.Features, 1)
	assert.Equal(t, "trip_001", resp.Trips.Features[0].ID)
	assert.Empty(t, resp.Visits.Features, "visits hidden unless requested")
	assert.Nil(t, resp.Stationary)

	assert.Equal(t, int64(6), resp.Meta.TotalLocations)
	assert.Equal(t, 6, resp.Meta.TripLocations)
	assert.Equal(t, int64(6), resp.Meta.TripLocationsRaw)
	assert.Equal(t, 1, resp.Meta.VisitsCount)
	assert.Equal(t, 1, resp.Meta.TripsCount)
	assert.False(t, resp.Meta.Downsampled)
	assert.Nil(t, resp.Meta.BucketSize)

	assert.False(t, resp.Pagination.HasMore)
	assert.True(t, resp.Pagination.IsFirstPage)
	assert.Nil(t, resp.Pagination.NextCursor)

	assert.True(t, locations.lastFilter.ExcludeIdle)
	assert.Zero(t, locations.lastFilter.BucketSeconds)
}

func TestGetTripPlotSeparateTrips(t *testing.T) {
	locations, visits, opts := tripTestData()
	opts.SeparateTrips = true
	opts.ShowVisits = true
	svc := NewTripService(locations, visits)

	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)

	// midpoint at minute 3 splits minutes 0..5 into [0,1,2] and [3,4,5]
	require.Len(t, resp.Trips.Features, 2)
	assert.Equal(t, "trip_001", resp.Trips.Features[0].ID)
	assert.Equal(t, "trip_002", resp.Trips.Features[1].ID)
	assert.Equal(t, 2, resp.Meta.TripsCount)
	assert.True(t, resp.Meta.SeparateTrips)

	require.Len(t, resp.Visits.Features, 1)
	assert.Equal(t, "visit_001", resp.Visits.Features[0].ID)
}

func TestGetTripPlotColorTrips(t *testing.T) {
	locations, visits, opts := tripTestData()
	opts.SeparateTrips = true
	opts.ColorTrips = true
	svc := NewTripService(locations, visits)

	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)

	require.Len(t, resp.Trips.Features, 2)
	first := resp.Trips.Features[0].Properties["color"]
	second := resp.Trips.Features[1].Properties["color"]
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestGetTripPlotPagination(t *testing.T) {
	locations, visits, opts := tripTestData()
	opts.SeparateTrips = true
	opts.PageSize = 4
	svc := NewTripService(locations, visits)

	// First page: 4 rows fetched as 5, boundary guard cuts at the minute-3
	// midpoint, so only minutes 0..2 are emitted.
	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)
	assert.True(t, resp.Pagination.HasMore)
	assert.True(t, resp.Pagination.IsFirstPage)
	require.NotNil(t, resp.Pagination.NextCursor)
	assert.Equal(t, "2024-01-01T00:02:00Z", *resp.Pagination.NextCursor)
	assert.Equal(t, 3, resp.Meta.TripLocations)

	// Second page resumes after the cursor and emits the rest.
	cursor, err := time.Parse(time.RFC3339, *resp.Pagination.NextCursor)
	require.NoError(t, err)
	opts.Cursor = &cursor

	resp, err = svc.GetTripPlot(opts)
	require.NoError(t, err)
	assert.False(t, resp.Pagination.HasMore)
	assert.False(t, resp.Pagination.IsFirstPage)
	assert.Nil(t, resp.Pagination.NextCursor)
	assert.Equal(t, 3, resp.Meta.TripLocations)
	require.Len(t, resp.Trips.Features, 1)
	assert.Equal(t, []string{
		"2024-01-01T00:03:00Z", "2024-01-01T00:04:00Z", "2024-01-01T00:05:00Z",
	}, resp.Trips.Features[0].Properties["times"])
}

func TestGetTripPlotDownsamples(t *testing.T) {
	locations, visits, opts := tripTestData()
	opts.NoBucket = false
	opts.End = opts.Start.Add(150 * time.Hour)
	opts.PageSize = 100
	svc := NewTripService(locations, visits)

	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)

	assert.True(t, resp.Meta.Downsampled)
	require.NotNil(t, resp.Meta.BucketSize)
	assert.Equal(t, "1 hour", *resp.Meta.BucketSize)
	assert.Equal(t, int64(3600), locations.lastFilter.BucketSeconds)
}

func TestGetTripPlotShowStationary(t *testing.T) {
	locations, visits, opts := tripTestData()
	locations.stationary = []models.LocationSample{
		{Time: opts.Start.Add(time.Minute), Longitude: 8.5, Latitude: 47.4},
	}
	opts.ShowStationary = true
	svc := NewTripService(locations, visits)

	resp, err := svc.GetTripPlot(opts)
	require.NoError(t, err)

	require.NotNil(t, resp.Stationary)
	require.Len(t, resp.Stationary.Features, 1)
	assert.Equal(t, "stationary_001", resp.Stationary.Features[0].ID)
}

func TestGetTripPlotEmptyRange(t *testing.T) {
	svc := NewTripService(&fakeLocationStore{}, &fakeVisitStore{})

	_, err := svc.GetTripPlot(models.TripPlotOptions{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		PageSize: 100,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTripPlotStoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewTripService(&fakeLocationStore{err: boom}, &fakeVisitStore{})

	_, err := svc.GetTripPlot(models.TripPlotOptions{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		PageSize: 100,
	})
	assert.ErrorIs(t, err, boom)
}
