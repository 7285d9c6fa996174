package trips

import (
	"log"
	"sort"
	"time"

	"wayfinder/internal/models"
	"wayfinder/internal/timeutil"
)

// VisitMidpoint returns the instant halfway between arrival and departure.
func VisitMidpoint(v models.Visit) time.Time {
	return timeutil.Midpoint(v.Arrival, v.Departure)
}

// SortedMidtimes computes the midpoint of every valid visit and returns
// them in ascending order. Visits may overlap, so arrival order does not
// imply midpoint order; the result is sorted explicitly. Visits violating
// the departure-after-arrival invariant are skipped with a warning.
func SortedMidtimes(visits []models.Visit) []time.Time {
	midtimes := make([]time.Time, 0, len(visits))
	for _, v := range visits {
		if !v.Valid() {
			log.Printf("[trips] warning: skipping visit with departure <= arrival (arrival=%s departure=%s)",
				timeutil.FormatInstant(v.Arrival), timeutil.FormatInstant(v.Departure))
			continue
		}
		midtimes = append(midtimes, VisitMidpoint(v))
	}
	sort.Slice(midtimes, func(i, j int) bool { return midtimes[i].Before(midtimes[j]) })
	return midtimes
}
