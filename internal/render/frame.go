package render

import (
	"context"
	"fmt"
	"log"
	"math"

	"backend-routeglobe/internal/route"
	"backend-routeglobe/internal/shared/geo"
	"backend-routeglobe/internal/weather"
)

const (
	sampledLift  = 8.0
	fallbackLift = 10.0
	markerLift   = 80.0

	lineWidth = 3.0
	glowWidth = 8.0
	glowAlpha = 0.3

	maxMarkers = 20

	markerColorWeather = "#a855f7"
	markerColorPlain   = "#00d4ff"

	minCameraAltitude = 10000.0
	cameraSpanScale   = 250000.0
	cameraSouthShift  = 2.0
	cameraPitch       = -50.0
)

const (
	TerrainSampled  = "sampled"
	TerrainFallback = "fallback"
	TerrainNone     = "none"
)

type Segment struct {
	ID         string       `json:"id,omitempty"`
	From       geo.Position `json:"from"`
	To         geo.Position `json:"to"`
	Color      RGB          `json:"color"`
	Difficulty float64      `json:"difficulty"`
	Source     int          `json:"source"`
	Width      float64      `json:"width"`
	GlowWidth  float64      `json:"glow_width"`
	GlowAlpha  float64      `json:"glow_alpha"`
}

type MarkerWeather struct {
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	Wind        string `json:"wind"`
}

type MarkerInfo struct {
	Title     string         `json:"title"`
	Distance  string         `json:"distance"`
	Elevation string         `json:"elevation"`
	Time      string         `json:"time"`
	Gradient  string         `json:"gradient"`
	Weather   *MarkerWeather `json:"weather,omitempty"`
}

type Marker struct {
	ID           string       `json:"id,omitempty"`
	Index        int          `json:"index"`
	Position     geo.Position `json:"position"`
	Label        string       `json:"label"`
	Color        string       `json:"color"`
	PixelSize    int          `json:"pixel_size"`
	OutlineWidth int          `json:"outline_width"`
	Selected     bool         `json:"selected"`
	Info         MarkerInfo   `json:"info"`
}

type Camera struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Altitude float64 `json:"altitude"`
	Heading  float64 `json:"heading"`
	Pitch    float64 `json:"pitch"`
	Roll     float64 `json:"roll"`
}

// Frame is the complete draw list for one route version.
type Frame struct {
	RouteVersion int64            `json:"route_version"`
	Terrain      string           `json:"terrain"`
	PointCount   int              `json:"point_count"`
	DenseCount   int              `json:"dense_count"`
	Segments     []Segment        `json:"segments"`
	Markers      []Marker         `json:"markers"`
	Camera       *Camera          `json:"camera,omitempty"`
	Overlay      *weather.Overlay `json:"overlay,omitempty"`
}

// Options tune a build. Seed drives the weather particle layout.
type Options struct {
	Sampler    HeightSampler
	Selected   *int
	Projection Projection
	Version    int64
	Seed       int64
}

// Build derives the draw list for r. A nil or empty route draws the sample
// route. Terrain failures degrade to recorded elevations and never fail the
// build.
func Build(ctx context.Context, r *route.Route, opts Options) Frame {
	rt := route.OrDefault(r)
	points := rt.Points
	frame := Frame{
		RouteVersion: opts.Version,
		Terrain:      TerrainNone,
		PointCount:   len(points),
		Segments:     []Segment{},
		Markers:      buildMarkers(points, opts.Selected),
		Camera:       frameCamera(rt),
	}

	difficulty := make([]float64, len(points))
	for i, p := range points {
		difficulty[i] = Difficulty(p)
	}

	switch {
	case len(points) < 2:
	case DenseCount(points) > MaxDensePoints:
		log.Printf("render: %d points too long to densify, drawing recorded elevations", len(points))
		frame.Terrain = TerrainFallback
		frame.Segments = fallbackSegments(points, difficulty)
	default:
		dense := Densify(points)
		frame.DenseCount = len(dense)
		heights, err := sampleHeights(ctx, opts.Sampler, coordinates(dense))
		if err != nil {
			log.Printf("render: terrain sampling failed, falling back to recorded elevations: %v", err)
			frame.Terrain = TerrainFallback
			frame.Segments = fallbackSegments(points, difficulty)
		} else {
			frame.Terrain = TerrainSampled
			frame.Segments = sampledSegments(dense, heights, sourceIndices(opts.Projection, dense, points), difficulty)
		}
	}

	frame.Overlay = weather.BuildOverlay(ctx, rt.WeatherSummary, opts.Sampler, opts.Seed)
	return frame
}

func sampledSegments(dense []DensePoint, heights []float64, sources []int, difficulty []float64) []Segment {
	out := make([]Segment, 0, len(dense)-1)
	for i := 0; i < len(dense)-1; i++ {
		src := sources[i]
		out = append(out, newSegment(
			geo.Position{Lat: dense[i].Lat, Lon: dense[i].Lon, Height: heights[i] + sampledLift},
			geo.Position{Lat: dense[i+1].Lat, Lon: dense[i+1].Lon, Height: heights[i+1] + sampledLift},
			src, difficulty[src],
		))
	}
	return out
}

func fallbackSegments(points []route.RoutePoint, difficulty []float64) []Segment {
	out := make([]Segment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		out = append(out, newSegment(
			geo.Position{Lat: a.Lat, Lon: a.Lon, Height: a.ElevationOrZero() + fallbackLift},
			geo.Position{Lat: b.Lat, Lon: b.Lon, Height: b.ElevationOrZero() + fallbackLift},
			i, difficulty[i],
		))
	}
	return out
}

func newSegment(from, to geo.Position, source int, difficulty float64) Segment {
	return Segment{
		From:       from,
		To:         to,
		Color:      ColorFor(difficulty),
		Difficulty: difficulty,
		Source:     source,
		Width:      lineWidth,
		GlowWidth:  glowWidth,
		GlowAlpha:  glowAlpha,
	}
}

// MarkerInterval is the spacing between waypoint markers for n points.
func MarkerInterval(n int) int {
	if iv := n / maxMarkers; iv > 1 {
		return iv
	}
	return 1
}

func buildMarkers(points []route.RoutePoint, selected *int) []Marker {
	n := len(points)
	interval := MarkerInterval(n)
	out := []Marker{}
	for i, p := range points {
		isSelected := selected != nil && *selected == i
		endpoint := i == 0 || i == n-1
		if !endpoint && i%interval != 0 && !isSelected {
			continue
		}
		m := Marker{
			Index:        i,
			Position:     geo.Position{Lat: p.Lat, Lon: p.Lon, Height: p.ElevationOrZero() + markerLift},
			Label:        route.FormatDuration(p.EstimatedTime),
			Color:        markerColorPlain,
			PixelSize:    10,
			OutlineWidth: 2,
			Info:         markerInfo(i, p),
		}
		if p.Weather != nil {
			m.Color = markerColorWeather
		}
		if endpoint {
			m.PixelSize = 14
		}
		if isSelected {
			m.Selected = true
			m.PixelSize = 18
			m.OutlineWidth = 3
		}
		out = append(out, m)
	}
	return out
}

func markerInfo(i int, p route.RoutePoint) MarkerInfo {
	info := MarkerInfo{
		Title:     fmt.Sprintf("Waypoint %d", i+1),
		Distance:  fmt.Sprintf("%.2f km", p.DistanceFromStart/1000),
		Elevation: fmt.Sprintf("%.0f m", p.ElevationOrZero()),
		Time:      route.FormatDuration(p.EstimatedTime),
		Gradient:  fmt.Sprintf("%.1f%%", p.GradientOrZero()),
	}
	if w := p.Weather; w != nil {
		info.Weather = &MarkerWeather{
			Description: w.Description,
			Temperature: fmt.Sprintf("%.1f°C", w.Temperature),
			Wind:        fmt.Sprintf("%.0f km/h", w.WindSpeed),
		}
	}
	return info
}

// frameCamera centers on the mean of the points, shifted south so the tilted
// view keeps the whole route in frame.
func frameCamera(r route.Route) *Camera {
	if len(r.Points) == 0 {
		return nil
	}
	b := r.Bounds
	if b == nil {
		b = route.ComputeBounds(r.Points)
	}
	var sumLat, sumLon float64
	for _, p := range r.Points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(r.Points))
	latSpan := b.MaxLat - b.MinLat
	lonSpan := b.MaxLon - b.MinLon
	return &Camera{
		Lat:      sumLat/n - latSpan*cameraSouthShift,
		Lon:      sumLon / n,
		Altitude: math.Max(minCameraAltitude, math.Max(latSpan, lonSpan)*cameraSpanScale),
		Pitch:    cameraPitch,
	}
}
