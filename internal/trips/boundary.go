package trips

import (
	"time"

	"wayfinder/internal/models"
)

// TruncateAtTripBoundary trims a full page so it never ends mid-trip.
//
// The last sample of the page belongs to the trip that started at the
// largest midtime <= its timestamp. That trip may continue past the page,
// so every sample from its start onward is dropped; the next page
// re-fetches them and emits the trip whole. Two escape hatches keep
// pagination moving:
//
//   - if the whole page lies before the first midtime it is one (possibly
//     incomplete) leading trip and is returned unchanged;
//   - if truncation would drop every sample, the page is one oversized
//     trip and is returned unchanged; forward progress beats trip
//     atomicity in that single case.
//
// samples must be sorted by time and midtimes ascending. Returns the kept
// samples and the boundary midtime used, or nil when nothing was trimmed.
func TruncateAtTripBoundary(samples []models.LocationSample, midtimes []time.Time) ([]models.LocationSample, *time.Time) {
	if len(samples) == 0 || len(midtimes) == 0 {
		return samples, nil
	}

	lastTime := samples[len(samples)-1].Time

	var tripStart *time.Time
	for i := len(midtimes) - 1; i >= 0; i-- {
		if !midtimes[i].After(lastTime) {
			m := midtimes[i]
			tripStart = &m
			break
		}
	}

	if tripStart == nil {
		// Every sample precedes the first midtime: one leading trip.
		return samples, nil
	}

	kept := samples[:0:0]
	for _, s := range samples {
		if s.Time.Before(*tripStart) {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		// The entire page is one trip larger than the page size.
		return samples, nil
	}

	return kept, tripStart
}
