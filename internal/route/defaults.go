package route

// Default returns the sample route drawn when a session has no uploaded track.
// Each call returns a fresh copy.
func Default() Route {
	points := make([]RoutePoint, len(helvellynPoints))
	for i, p := range helvellynPoints {
		points[i] = RoutePoint{
			Lat:               p[0],
			Lon:               p[1],
			Elevation:         Float(p[2]),
			DistanceFromStart: p[3],
			EstimatedTime:     p[4],
			Gradient:          Float(p[5]),
		}
	}
	return Route{
		Points:                      points,
		TotalDistance:               13350,
		TotalAscent:                 890,
		TotalDescent:                890,
		EstimatedTotalTime:          9586,
		EstimatedTotalTimeFormatted: "2h 40m",
		Bounds: &Bounds{
			MinLat: 54.525230266539,
			MaxLat: 54.547038889231,
			MinLon: -3.01908566913965,
			MaxLon: -2.94921654150124,
		},
	}
}

// OrDefault returns r, or the sample route when r is nil or has no points.
func OrDefault(r *Route) Route {
	if r == nil || len(r.Points) == 0 {
		return Default()
	}
	return *r
}
