package render

import (
	"errors"
	"fmt"
	"math"

	"backend-routeglobe/internal/route"
	"backend-routeglobe/internal/shared/geo"
)

// maxStepMeters is the widest gap left between two densified points.
const maxStepMeters = 20.0

// MaxDensePoints bounds how many interpolated points a single route may
// expand to, roughly 2000 km of track.
const MaxDensePoints = 100000

var ErrRouteTooLarge = errors.New("route too large to render")

// DensePoint is an interpolated coordinate. Distance is the interpolated
// distance_from_start, Source the index of the original point starting the
// segment it came from.
type DensePoint struct {
	geo.LatLon
	Distance float64 `json:"distance"`
	Source   int     `json:"source"`
}

// Subdivisions returns how many steps a segment between a and b is split into.
// Identical points still produce one step.
func Subdivisions(a, b geo.LatLon) int {
	n := int(math.Ceil(geo.ApproxMeters(a, b) / maxStepMeters))
	if n < 1 {
		return 1
	}
	return n
}

// DenseCount returns how many points Densify would produce for points.
func DenseCount(points []route.RoutePoint) int {
	if len(points) == 0 {
		return 0
	}
	total := 1
	for i := 0; i < len(points)-1; i++ {
		total += Subdivisions(
			geo.LatLon{Lat: points[i].Lat, Lon: points[i].Lon},
			geo.LatLon{Lat: points[i+1].Lat, Lon: points[i+1].Lon},
		)
	}
	return total
}

// CheckSize rejects routes that would densify past MaxDensePoints.
func CheckSize(points []route.RoutePoint) error {
	if n := DenseCount(points); n > MaxDensePoints {
		return fmt.Errorf("%w: %d interpolated points, limit %d", ErrRouteTooLarge, n, MaxDensePoints)
	}
	return nil
}

// Densify interpolates between consecutive route points so the drawn line can
// follow terrain. The first and last outputs are the original endpoints.
func Densify(points []route.RoutePoint) []DensePoint {
	if len(points) == 0 {
		return nil
	}
	last := len(points) - 1
	out := make([]DensePoint, 0, len(points))
	for i := 0; i < last; i++ {
		a, b := points[i], points[i+1]
		from, to := geo.LatLon{Lat: a.Lat, Lon: a.Lon}, geo.LatLon{Lat: b.Lat, Lon: b.Lon}
		n := Subdivisions(from, to)
		for step := 0; step < n; step++ {
			t := float64(step) / float64(n)
			out = append(out, DensePoint{
				LatLon:   geo.Lerp(from, to, t),
				Distance: a.DistanceFromStart + (b.DistanceFromStart-a.DistanceFromStart)*t,
				Source:   i,
			})
		}
	}
	end := points[last]
	out = append(out, DensePoint{
		LatLon:   geo.LatLon{Lat: end.Lat, Lon: end.Lon},
		Distance: end.DistanceFromStart,
		Source:   last,
	})
	return out
}

func coordinates(dense []DensePoint) []geo.LatLon {
	out := make([]geo.LatLon, len(dense))
	for i, d := range dense {
		out[i] = d.LatLon
	}
	return out
}
