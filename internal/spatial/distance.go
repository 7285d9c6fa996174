// Package spatial provides the great-circle geometry used to filter
// visits near the configured home location.
package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius.
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// WithinRadius reports whether the point lies within radius meters of the
// center.
func WithinRadius(lat, lon, centerLat, centerLon, radius float64) bool {
	return HaversineDistance(lat, lon, centerLat, centerLon) <= radius
}
