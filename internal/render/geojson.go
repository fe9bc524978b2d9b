package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON flattens a frame into a FeatureCollection. Runs of segments sharing
// a color become one LineString carrying per-vertex heights; markers and wind
// arrows become Points.
func (f Frame) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for start := 0; start < len(f.Segments); {
		end := start
		for end+1 < len(f.Segments) && f.Segments[end+1].Color == f.Segments[start].Color {
			end++
		}
		run := f.Segments[start : end+1]
		line := make(orb.LineString, 0, len(run)+1)
		heights := make([]float64, 0, len(run)+1)
		line = append(line, orb.Point{run[0].From.Lon, run[0].From.Lat})
		heights = append(heights, run[0].From.Height)
		for _, s := range run {
			line = append(line, orb.Point{s.To.Lon, s.To.Lat})
			heights = append(heights, s.To.Height)
		}

		feat := geojson.NewFeature(line)
		feat.Properties["kind"] = "route"
		feat.Properties["color"] = run[0].Color.Hex()
		feat.Properties["difficulty"] = run[0].Difficulty
		feat.Properties["source"] = run[0].Source
		feat.Properties["width"] = run[0].Width
		feat.Properties["heights"] = heights
		fc.Append(feat)
		start = end + 1
	}

	for _, m := range f.Markers {
		feat := geojson.NewFeature(orb.Point{m.Position.Lon, m.Position.Lat})
		feat.Properties["kind"] = "marker"
		feat.Properties["index"] = m.Index
		feat.Properties["label"] = m.Label
		feat.Properties["color"] = m.Color
		feat.Properties["pixel_size"] = m.PixelSize
		feat.Properties["selected"] = m.Selected
		feat.Properties["height"] = m.Position.Height
		fc.Append(feat)
	}

	if f.Overlay != nil {
		for _, w := range f.Overlay.Wind {
			feat := geojson.NewFeature(orb.Point{w.Position.Lon, w.Position.Lat})
			feat.Properties["kind"] = "wind"
			feat.Properties["rotation"] = w.Rotation
			feat.Properties["speed"] = w.Speed
			feat.Properties["height"] = w.Position.Height
			fc.Append(feat)
		}
	}
	return fc
}
