// Package trips implements the trip/visit aggregation engine: adaptive
// time-bucket sizing, cursor pagination, visit-midpoint trip segmentation
// and the page boundary guard that keeps trips whole across pages.
package trips

import (
	"fmt"
	"math"
	"time"
)

// BucketSize is a time-aggregation granularity chosen from a fixed ladder.
type BucketSize struct {
	Seconds int64
	Label   string
}

// String returns the human-readable label ("5 minutes", "1 hour") reported
// in response metadata.
func (b BucketSize) String() string {
	return b.Label
}

// ChooseBucket picks a bucket granularity so that the range divided by the
// bucket lands near targetPoints. The ladder is a monotonic step function
// of the range length: predictable and cache-friendly. Returns nil when the
// range is too small to need aggregation. targetPoints must be >= 1; the
// caller clamps page sizes before calling.
func ChooseBucket(start, end time.Time, targetPoints int) *BucketSize {
	if targetPoints < 1 {
		targetPoints = 1
	}
	rangeSeconds := end.Sub(start).Seconds()
	if rangeSeconds <= 0 {
		return nil
	}

	secondsPerBucket := rangeSeconds / float64(targetPoints)

	switch {
	case secondsPerBucket <= 1:
		return nil
	case secondsPerBucket < 60:
		s := int64(math.Round(secondsPerBucket))
		if s < 1 {
			s = 1
		}
		return &BucketSize{Seconds: s, Label: fmt.Sprintf("%d seconds", s)}
	case secondsPerBucket < 300:
		return &BucketSize{Seconds: 60, Label: "1 minute"}
	case secondsPerBucket < 900:
		return &BucketSize{Seconds: 300, Label: "5 minutes"}
	case secondsPerBucket < 1800:
		return &BucketSize{Seconds: 900, Label: "15 minutes"}
	case secondsPerBucket < 3600:
		return &BucketSize{Seconds: 1800, Label: "30 minutes"}
	case secondsPerBucket < 7200:
		return &BucketSize{Seconds: 3600, Label: "1 hour"}
	case secondsPerBucket < 21600:
		return &BucketSize{Seconds: 10800, Label: "3 hours"}
	case secondsPerBucket < 43200:
		return &BucketSize{Seconds: 21600, Label: "6 hours"}
	case secondsPerBucket < 86400:
		return &BucketSize{Seconds: 43200, Label: "12 hours"}
	default:
		return &BucketSize{Seconds: 86400, Label: "1 day"}
	}
}
