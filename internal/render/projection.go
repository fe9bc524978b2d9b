package render

import (
	"math"
	"sort"

	"backend-routeglobe/internal/route"
)

// Projection decides which original point colors a densified point.
type Projection string

const (
	// ProjectionProportional scales the densified index onto the original
	// index range. It assumes evenly spaced original points.
	ProjectionProportional Projection = "proportional"
	// ProjectionNearest picks the original point closest by distance along
	// the route.
	ProjectionNearest Projection = "nearest"
)

func ParseProjection(s string) (Projection, bool) {
	switch Projection(s) {
	case "", ProjectionProportional:
		return ProjectionProportional, true
	case ProjectionNearest:
		return ProjectionNearest, true
	}
	return "", false
}

// ProportionalIndex maps densified index i of denseLen points onto an index
// of origLen points as floor(i/denseLen*origLen).
func ProportionalIndex(i, denseLen, origLen int) int {
	if denseLen <= 0 || origLen <= 0 {
		return 0
	}
	idx := int(math.Floor(float64(i) / float64(denseLen) * float64(origLen)))
	if idx >= origLen {
		return origLen - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// NearestIndex returns the original point whose distance_from_start is
// closest to distance. Ties go to the earlier point.
func NearestIndex(points []route.RoutePoint, distance float64) int {
	n := len(points)
	if n == 0 {
		return 0
	}
	j := sort.Search(n, func(k int) bool { return points[k].DistanceFromStart >= distance })
	if j == 0 {
		return 0
	}
	if j == n {
		return n - 1
	}
	if distance-points[j-1].DistanceFromStart <= points[j].DistanceFromStart-distance {
		return j - 1
	}
	return j
}

// sourceIndices projects every densified point back onto the original points.
// Routes without distance data fall back to the proportional projection.
func sourceIndices(p Projection, dense []DensePoint, points []route.RoutePoint) []int {
	out := make([]int, len(dense))
	nearest := p == ProjectionNearest && len(points) > 0 && points[len(points)-1].DistanceFromStart > 0
	for i, d := range dense {
		if nearest {
			out[i] = NearestIndex(points, d.Distance)
			continue
		}
		out[i] = ProportionalIndex(i, len(dense), len(points))
	}
	return out
}
