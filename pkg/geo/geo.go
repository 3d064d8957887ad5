package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the Earth radius used for Haversine distances.
const EarthRadiusMiles = 3959.0

// Valid reports whether lat/lng form a usable coordinate pair.
func Valid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the great-circle distance in miles between two points
// (lat/lng in degrees), rounded to one decimal place.
func Distance(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if !Valid(lat1, lng1) {
		return 0, fmt.Errorf("invalid coordinates (%f, %f)", lat1, lng1)
	}
	if !Valid(lat2, lng2) {
		return 0, fmt.Errorf("invalid coordinates (%f, %f)", lat2, lng2)
	}
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(EarthRadiusMiles*c*10) / 10, nil
}

// FormatDistance renders a distance for display, e.g. "2.5 miles away".
func FormatDistance(miles float64) string {
	if miles < 1 {
		return "< 1 mile away"
	}
	if miles < 10 {
		return fmt.Sprintf("%.1f miles away", miles)
	}
	return fmt.Sprintf("%d miles away", int(math.Round(miles)))
}
