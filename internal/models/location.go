package models

import (
	"strings"
	"time"
)

// MotionStationary is the motion tag Overland reports for samples recorded
// while the device is not moving. Stationary samples are excluded from trip
// queries and optionally served as their own feature collection.
const MotionStationary = "stationary"

// LocationSample represents one timestamped GPS fix as served by the store.
// Rows are immutable once persisted; Time is always UTC.
type LocationSample struct {
	ID                 int64     `json:"id,omitempty"`
	Time               time.Time `json:"time"`
	Longitude          float64   `json:"longitude"`
	Latitude           float64   `json:"latitude"`
	Altitude           float64   `json:"altitude,omitempty"`
	HorizontalAccuracy int       `json:"horizontal_accuracy"`
	VerticalAccuracy   int       `json:"vertical_accuracy,omitempty"`
	Speed              float64   `json:"speed"`
	Motion             []string  `json:"motion,omitempty"`
	BatteryLevel       float64   `json:"battery_level,omitempty"`
	BatteryState       string    `json:"battery_state,omitempty"`
	Wifi               string    `json:"wifi,omitempty"`
	DeviceID           string    `json:"device_id,omitempty"`

	// Color is transient rendering metadata assigned per request when trip
	// coloring is enabled. Never persisted.
	Color string `json:"color,omitempty"`
}

// IsStationary reports whether the sample's primary motion tag is stationary.
func (s LocationSample) IsStationary() bool {
	return len(s.Motion) > 0 && s.Motion[0] == MotionStationary
}

// MotionString joins motion tags for storage ("walking,running").
func (s LocationSample) MotionString() string {
	return strings.Join(s.Motion, ",")
}

// ParseMotion splits a stored motion string back into tags.
func ParseMotion(motion string) []string {
	if motion == "" {
		return nil
	}
	return strings.Split(motion, ",")
}

// Visit represents a detected dwell interval. Departure is strictly after
// arrival; visits without a recorded departure are filtered at ingest and
// never reach the engine.
type Visit struct {
	ID                 int64     `json:"id,omitempty"`
	Arrival            time.Time `json:"arrival"`
	Departure          time.Time `json:"departure"`
	Longitude          float64   `json:"longitude"`
	Latitude           float64   `json:"latitude"`
	HorizontalAccuracy int       `json:"horizontal_accuracy"`
	DeviceID           string    `json:"device_id,omitempty"`
}

// Valid reports whether the visit satisfies the departure-after-arrival
// invariant. Invalid rows are excluded from segmentation rather than
// crashing the request.
func (v Visit) Valid() bool {
	return v.Departure.After(v.Arrival)
}

// TripSegment is a maximal run of location samples between two visit
// midpoints (or the range edges). Constructed per request, never persisted.
type TripSegment struct {
	ID      string
	Samples []LocationSample
}
