package trips

import (
	"fmt"
	"sort"
	"time"

	"wayfinder/internal/models"
)

// Segment partitions samples into trips bounded by visit midpoints.
//
// The partition is exhaustive and disjoint: everything before the first
// midtime, then each half-open interval [midtime[i], midtime[i+1]), then
// everything from the last midtime on. A sample exactly at a midtime
// starts the later trip. Empty partitions are skipped; IDs are assigned
// sequentially (trip_001, trip_002, ...) in time order and are only
// meaningful within one response. With no visits the whole input is a
// single trip.
//
// samples must be sorted by time; visits in any order (midtimes are
// sorted internally).
func Segment(samples []models.LocationSample, visits []models.Visit) []models.TripSegment {
	if len(samples) == 0 {
		return nil
	}

	midtimes := SortedMidtimes(visits)
	return segmentByMidtimes(samples, midtimes)
}

func segmentByMidtimes(samples []models.LocationSample, midtimes []time.Time) []models.TripSegment {
	if len(midtimes) == 0 {
		return []models.TripSegment{{ID: "trip_001", Samples: samples}}
	}

	var segments []models.TripSegment
	counter := 1
	emit := func(run []models.LocationSample) {
		if len(run) == 0 {
			return
		}
		segments = append(segments, models.TripSegment{
			ID:      fmt.Sprintf("trip_%03d", counter),
			Samples: run,
		})
		counter++
	}

	// samples is sorted, so each partition is a contiguous window found
	// by binary search on its upper boundary.
	rest := samples
	for _, m := range midtimes {
		cut := sort.Search(len(rest), func(i int) bool {
			return !rest[i].Time.Before(m)
		})
		emit(rest[:cut])
		rest = rest[cut:]
	}
	emit(rest)

	return segments
}
