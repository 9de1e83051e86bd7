// Package geo provides the spatial primitives of parking zones: coordinates,
// polygon regions with holes, containment and great-circle distance.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// Location is a WGS 84 coordinate in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Loc is a shorthand constructor for Location
func Loc(lat, lon float64) Location {
	return Location{Latitude: lat, Longitude: lon}
}

// Valid reports whether the coordinate is within latitude/longitude bounds
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// String returns "lat,lon"
func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
}

// Distance returns the great-circle distance in metres between two points
func Distance(a, b Location) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	rLat1 := degreesToRadians(a.Latitude)
	rLat2 := degreesToRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
