// Package geo computes great-circle distances between coordinates and
// selects the nearest store from the configured registry.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the great-circle formula.
const earthRadiusKm = 6371.0088

// Assumed constant travel speeds for the time estimates. These are rough
// approximations, not routed road times.
const (
	carSpeedKmh  = 60.0
	walkSpeedKmh = 5.0
)

// Coordinate is a WGS84 latitude/longitude pair in degrees. The package does
// not validate ranges; out-of-range or NaN inputs produce mathematically
// defined but meaningless results.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceReport is the distance between two points plus derived
// constant-speed travel estimates.
type DistanceReport struct {
	Km          float64 `json:"km"`
	Meters      float64 `json:"meters"`
	CarMinutes  float64 `json:"car_minutes"`
	WalkMinutes float64 `json:"walk_minutes"`
}

// Distance returns the great-circle distance between a and b. Km is rounded
// to 2 decimals, meters to the nearest whole unit and the minute estimates to
// 1 decimal. Pure function, no failure modes.
func Distance(a, b Coordinate) DistanceReport {
	km := haversineKm(a, b)
	return DistanceReport{
		Km:          round(km, 2),
		Meters:      round(km*1000, 0),
		CarMinutes:  round(km/carSpeedKmh*60, 1),
		WalkMinutes: round(km/walkSpeedKmh*60, 1),
	}
}

func haversineKm(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
