package route

import (
	"errors"
	"fmt"
	"math"

	"backend-routeglobe/internal/shared/geo"
)

var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrDecreasingDistance = errors.New("distance_from_start must be non-decreasing")
	ErrDecreasingTime     = errors.New("estimated_time must be non-decreasing")
)

const maxProfilePoints = 200

// Validate checks coordinate ranges and the monotonic distance and time fields.
func Validate(r Route) error {
	for i, p := range r.Points {
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return fmt.Errorf("point %d: %w", i, ErrInvalidCoordinate)
		}
		if i == 0 {
			continue
		}
		prev := r.Points[i-1]
		if p.DistanceFromStart < prev.DistanceFromStart {
			return fmt.Errorf("point %d: %w", i, ErrDecreasingDistance)
		}
		if p.EstimatedTime < prev.EstimatedTime {
			return fmt.Errorf("point %d: %w", i, ErrDecreasingTime)
		}
	}
	return nil
}

func ComputeBounds(points []RoutePoint) *Bounds {
	if len(points) == 0 {
		return nil
	}
	b := &Bounds{MinLat: points[0].Lat, MaxLat: points[0].Lat, MinLon: points[0].Lon, MaxLon: points[0].Lon}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b
}

// Normalize fills bounds and totals a backend left empty. Existing values are kept.
func Normalize(r Route) Route {
	out := r
	if out.Bounds == nil {
		out.Bounds = ComputeBounds(out.Points)
	}
	if out.TotalDistance == 0 && len(out.Points) > 1 {
		var dist, ascent, descent float64
		for i := 1; i < len(out.Points); i++ {
			a, b := out.Points[i-1], out.Points[i]
			dist += geo.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
			if a.Elevation != nil && b.Elevation != nil {
				d := *b.Elevation - *a.Elevation
				if d > 0 {
					ascent += d
				} else {
					descent -= d
				}
			}
		}
		out.TotalDistance = dist
		out.TotalAscent = ascent
		out.TotalDescent = descent
	}
	if out.EstimatedTotalTime == 0 && len(out.Points) > 0 {
		out.EstimatedTotalTime = out.Points[len(out.Points)-1].EstimatedTime
	}
	if out.EstimatedTotalTimeFormatted == "" && out.EstimatedTotalTime > 0 {
		out.EstimatedTotalTimeFormatted = FormatDuration(out.EstimatedTotalTime)
	}
	return out
}

// SampleIndices spreads at most max indices evenly over n points, always
// starting at 0.
func SampleIndices(n, max int) []int {
	if max <= 0 || n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	step := float64(n) / float64(max)
	out := make([]int, max)
	for i := range out {
		out[i] = int(float64(i) * step)
	}
	return out
}

// Pick returns the points at indices.
func Pick(points []RoutePoint, indices []int) []RoutePoint {
	out := make([]RoutePoint, len(indices))
	for i, idx := range indices {
		out[i] = points[idx]
	}
	return out
}

type ProfilePoint struct {
	Index     int     `json:"index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
}

type Profile struct {
	Points       []ProfilePoint `json:"points"`
	MinElevation float64        `json:"min_elevation"`
	MaxElevation float64        `json:"max_elevation"`
	MaxDistance  float64        `json:"max_distance"`
	Distance     string         `json:"distance"`
	Duration     string         `json:"duration"`
	Ascent       string         `json:"ascent"`
	Descent      string         `json:"descent"`
	WeatherIcon  string         `json:"weather_icon"`
}

// BuildProfile samples the elevation curve into percent coordinates: x along
// distance, y inverted so higher ground sits nearer the top.
func BuildProfile(r Route) Profile {
	prof := Profile{
		Distance:    FormatDistance(r.TotalDistance),
		Duration:    r.EstimatedTotalTimeFormatted,
		Ascent:      FormatMeters(r.TotalAscent),
		Descent:     FormatMeters(r.TotalDescent),
		WeatherIcon: WeatherIcon(r.WeatherSummary),
	}
	if prof.Duration == "" {
		prof.Duration = FormatDuration(r.EstimatedTotalTime)
	}
	n := len(r.Points)
	if n == 0 {
		return prof
	}

	minEle, maxEle := math.Inf(1), math.Inf(-1)
	for _, p := range r.Points {
		e := p.ElevationOrZero()
		minEle = math.Min(minEle, e)
		maxEle = math.Max(maxEle, e)
	}
	eleRange := maxEle - minEle
	if eleRange == 0 {
		eleRange = 1
	}
	maxDist := r.Points[n-1].DistanceFromStart
	prof.MinElevation, prof.MaxElevation, prof.MaxDistance = minEle, maxEle, maxDist

	rate := n / maxProfilePoints
	if rate < 1 {
		rate = 1
	}
	for i := 0; i < n; i += rate {
		p := r.Points[i]
		x := 0.0
		if maxDist > 0 {
			x = p.DistanceFromStart / maxDist * 100
		}
		prof.Points = append(prof.Points, ProfilePoint{
			Index:     i,
			X:         x,
			Y:         100 - (p.ElevationOrZero()-minEle)/eleRange*100,
			Distance:  p.DistanceFromStart,
			Elevation: p.ElevationOrZero(),
		})
	}
	return prof
}
