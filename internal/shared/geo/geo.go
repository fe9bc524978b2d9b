// Package geo holds the small amount of spherical and planar math shared by
// route statistics and path rendering.
package geo

import "math"

const (
	earthRadiusKm = 6371.0

	// MetersPerDegree is the one-degree-of-latitude approximation used for
	// cheap planar segment lengths.
	MetersPerDegree = 111000.0
)

// LatLon is a bare coordinate pair in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position is a coordinate with a height in meters above the ellipsoid.
type Position struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Height float64 `json:"height"`
}

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// ApproxMeters treats the degree deltas as planar and scales by
// MetersPerDegree. Not geodesically exact.
func ApproxMeters(a, b LatLon) float64 {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * MetersPerDegree
}

// Lerp interpolates linearly between a and b, t in [0,1].
func Lerp(a, b LatLon, t float64) LatLon {
	return LatLon{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
