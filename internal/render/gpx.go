package render

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"backend-routeglobe/internal/route"
)

// ExportGPX writes the densified route as a GPX 1.1 track. Elevations are
// interpolated from the original points; waypoint markers become waypoints.
func ExportGPX(name string, r route.Route) ([]byte, error) {
	if err := CheckSize(r.Points); err != nil {
		return nil, err
	}
	doc := &gpx.GPX{}
	doc.Creator = "routeglobe"
	doc.Name = name

	track := gpx.GPXTrack{}
	track.Name = name
	segment := gpx.GPXTrackSegment{}

	dense := Densify(r.Points)
	for _, d := range dense {
		var p gpx.GPXPoint
		p.Latitude = d.Lat
		p.Longitude = d.Lon
		if ele, ok := interpolatedElevation(r.Points, d); ok {
			p.Elevation = *gpx.NewNullableFloat64(ele)
		}
		segment.Points = append(segment.Points, p)
	}
	track.Segments = append(track.Segments, segment)
	doc.Tracks = append(doc.Tracks, track)

	for _, m := range buildMarkers(r.Points, nil) {
		src := r.Points[m.Index]
		var wpt gpx.GPXPoint
		wpt.Latitude = src.Lat
		wpt.Longitude = src.Lon
		if src.Elevation != nil {
			wpt.Elevation = *gpx.NewNullableFloat64(*src.Elevation)
		}
		wpt.Name = m.Info.Title
		wpt.Description = fmt.Sprintf("%s, %s", m.Info.Distance, m.Label)
		doc.Waypoints = append(doc.Waypoints, wpt)
	}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("gpx encode: %w", err)
	}
	return out, nil
}

func interpolatedElevation(points []route.RoutePoint, d DensePoint) (float64, bool) {
	a := points[d.Source]
	if a.Elevation == nil {
		return 0, false
	}
	if d.Source+1 >= len(points) {
		return *a.Elevation, true
	}
	b := points[d.Source+1]
	if b.Elevation == nil {
		return *a.Elevation, true
	}
	span := b.DistanceFromStart - a.DistanceFromStart
	if span <= 0 {
		return *a.Elevation, true
	}
	t := (d.Distance - a.DistanceFromStart) / span
	return *a.Elevation + (*b.Elevation-*a.Elevation)*t, true
}
