// Package geojson builds the GeoJSON feature collections served by the
// trip and visit plot endpoints.
package geojson

import (
	"fmt"
	"math"

	"wayfinder/internal/models"
	"wayfinder/internal/timeutil"
)

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON Feature with an optional identifier.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a GeoJSON geometry. Coordinates hold either a single
// position (Point) or a position array (LineString).
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Position is a [longitude, latitude] pair.
type Position [2]float64

// NewFeatureCollection returns an empty collection with a non-nil,
// serializable features array.
func NewFeatureCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// TripFeature converts one trip segment into a LineString feature carrying
// a parallel timestamp array. An empty segment yields no feature.
func TripFeature(seg models.TripSegment) (Feature, bool) {
	if len(seg.Samples) == 0 {
		return Feature{}, false
	}

	coords := make([]Position, 0, len(seg.Samples))
	times := make([]string, 0, len(seg.Samples))
	for _, s := range seg.Samples {
		coords = append(coords, Position{s.Longitude, s.Latitude})
		times = append(times, timeutil.FormatInstant(s.Time))
	}

	props := map[string]interface{}{
		"trip_id": seg.ID,
		"times":   times,
	}
	if c := seg.Samples[0].Color; c != "" {
		props["color"] = c
	}

	return Feature{
		Type:       "Feature",
		ID:         seg.ID,
		Geometry:   Geometry{Type: "LineString", Coordinates: coords},
		Properties: props,
	}, true
}

// TripCollection wraps trip segments into a FeatureCollection, skipping
// empty segments.
func TripCollection(segments []models.TripSegment) FeatureCollection {
	fc := NewFeatureCollection()
	for _, seg := range segments {
		if f, ok := TripFeature(seg); ok {
			fc.Features = append(fc.Features, f)
		}
	}
	return fc
}

// VisitFeature converts a visit into a Point feature. Duration is rounded
// to whole seconds and the horizontal accuracy doubles as a render radius.
func VisitFeature(v models.Visit, id string) Feature {
	return Feature{
		Type: "Feature",
		ID:   id,
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: Position{v.Longitude, v.Latitude},
		},
		Properties: map[string]interface{}{
			"visit_id":   id,
			"start":      timeutil.FormatInstant(v.Arrival),
			"end":        timeutil.FormatInstant(v.Departure),
			"duration_s": int64(math.Round(v.Departure.Sub(v.Arrival).Seconds())),
			"radius_m":   v.HorizontalAccuracy,
		},
	}
}

// VisitCollection wraps visits into a FeatureCollection. IDs are assigned
// sequentially in input (ascending arrival) order and are only meaningful
// within a single response.
func VisitCollection(visits []models.Visit) FeatureCollection {
	fc := NewFeatureCollection()
	for i, v := range visits {
		fc.Features = append(fc.Features, VisitFeature(v, fmt.Sprintf("visit_%03d", i+1)))
	}
	return fc
}

// StationaryCollection wraps stationary samples into zero-duration Point
// features sourced from the raw location stream.
func StationaryCollection(samples []models.LocationSample) FeatureCollection {
	fc := NewFeatureCollection()
	for i, s := range samples {
		id := fmt.Sprintf("stationary_%03d", i+1)
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			ID:   id,
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: Position{s.Longitude, s.Latitude},
			},
			Properties: map[string]interface{}{
				"stationary_id": id,
				"time":          timeutil.FormatInstant(s.Time),
				"duration_s":    0,
				"radius_m":      s.HorizontalAccuracy,
				"source":        "location_samples",
			},
		})
	}
	return fc
}
