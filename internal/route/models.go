package route

// RoutePoint is one sampled position along a track. Optional numeric fields are
// pointers so an explicit zero stays distinguishable from an absent value.
type RoutePoint struct {
	Lat               float64      `json:"lat"`
	Lon               float64      `json:"lon"`
	Elevation         *float64     `json:"elevation,omitempty"`
	DistanceFromStart float64      `json:"distance_from_start"`
	EstimatedTime     float64      `json:"estimated_time"`
	SegmentSpeed      *float64     `json:"segment_speed,omitempty"`
	Gradient          *float64     `json:"gradient,omitempty"`
	TerrainFactor     *float64     `json:"terrain_factor,omitempty"`
	WeatherFactor     *float64     `json:"weather_factor,omitempty"`
	Weather           *WeatherData `json:"weather,omitempty"`
}

// ElevationOrZero returns the recorded elevation, 0 when absent.
func (p RoutePoint) ElevationOrZero() float64 {
	if p.Elevation == nil {
		return 0
	}
	return *p.Elevation
}

// GradientOrZero returns the signed slope percentage, 0 when absent.
func (p RoutePoint) GradientOrZero() float64 {
	if p.Gradient == nil {
		return 0
	}
	return *p.Gradient
}

// TerrainFactorOrNominal returns the roughness factor, 1.0 when absent.
func (p RoutePoint) TerrainFactorOrNominal() float64 {
	if p.TerrainFactor == nil {
		return 1.0
	}
	return *p.TerrainFactor
}

// WeatherFactorOrZero returns the weather penalty, 0 when absent.
func (p RoutePoint) WeatherFactorOrZero() float64 {
	if p.WeatherFactor == nil {
		return 0
	}
	return *p.WeatherFactor
}

type WeatherData struct {
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	SnowDepth     float64 `json:"snow_depth"`
	WeatherCode   int     `json:"weather_code"`
	Description   string  `json:"description"`
}

type WeatherSegment struct {
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	Temperature       float64 `json:"temperature"`
	Precipitation     float64 `json:"precipitation"`
	WindSpeed         float64 `json:"wind_speed"`
	WindDirection     float64 `json:"wind_direction"`
	SnowDepth         float64 `json:"snow_depth"`
	WeatherCode       int     `json:"weather_code"`
	Description       string  `json:"description"`
	HasRain           bool    `json:"has_rain"`
	HasSnow           bool    `json:"has_snow"`
	HasWind           bool    `json:"has_wind"`
	DistanceFromStart float64 `json:"distance_from_start"`
}

type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type WeatherSummary struct {
	Available          bool             `json:"available"`
	Segments           []WeatherSegment `json:"segments,omitempty"`
	TempRange          *TempRange       `json:"temp_range,omitempty"`
	MaxWind            float64          `json:"max_wind,omitempty"`
	TotalPrecipitation float64          `json:"total_precipitation,omitempty"`
	HasSnow            bool             `json:"has_snow,omitempty"`
	HasRain            bool             `json:"has_rain,omitempty"`
	Conditions         []string         `json:"conditions,omitempty"`
}

type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Route is immutable once received: updates build a new value via
// MergeWeather instead of editing points in place.
type Route struct {
	Points                      []RoutePoint    `json:"points"`
	TotalDistance               float64         `json:"total_distance"`
	TotalAscent                 float64         `json:"total_ascent"`
	TotalDescent                float64         `json:"total_descent"`
	EstimatedTotalTime          float64         `json:"estimated_total_time,omitempty"`
	EstimatedTotalTimeFormatted string          `json:"estimated_total_time_formatted,omitempty"`
	Bounds                      *Bounds         `json:"bounds,omitempty"`
	WeatherSummary              *WeatherSummary `json:"weather_summary,omitempty"`
}

// MergeWeather returns a copy of r carrying weather for the sampled points.
// sampled[k] answers for r.Points[indices[k]]; only weather, weather_factor
// and timing are read from it. Each sample's weather also covers the points
// up to the next answered sample, the last one through the end of the route.
// Times between samples are stretched so each stretch ends at the sampled
// time, and the tail keeps the last stretch's pace.
func (r Route) MergeWeather(indices []int, sampled []RoutePoint, summary *WeatherSummary) Route {
	out := r
	out.Points = make([]RoutePoint, len(r.Points))
	copy(out.Points, r.Points)
	out.WeatherSummary = summary

	n := len(indices)
	if len(sampled) < n {
		n = len(sampled)
	}
	if n == 0 || len(out.Points) == 0 {
		return out
	}
	for k := 0; k < n; k++ {
		end := len(out.Points)
		if k+1 < n {
			end = indices[k+1]
		}
		for j := indices[k]; j < end; j++ {
			out.Points[j].Weather = sampled[k].Weather
			out.Points[j].WeatherFactor = sampled[k].WeatherFactor
		}
	}

	orig := r.Points
	shift := sampled[0].EstimatedTime - orig[indices[0]].EstimatedTime
	for j := 0; j <= indices[0]; j++ {
		out.Points[j].EstimatedTime = orig[j].EstimatedTime + shift
	}
	ratio := 1.0
	for k := 1; k < n; k++ {
		a, b := indices[k-1], indices[k]
		oldSpan := orig[b].EstimatedTime - orig[a].EstimatedTime
		newSpan := sampled[k].EstimatedTime - sampled[k-1].EstimatedTime
		ratio = 1.0
		if oldSpan > 0 && newSpan >= 0 {
			ratio = newSpan / oldSpan
		}
		stretch(out.Points, orig, a, b, ratio)
	}
	stretch(out.Points, orig, indices[n-1], len(orig)-1, ratio)

	last := out.Points[len(out.Points)-1].EstimatedTime
	out.EstimatedTotalTime = last
	out.EstimatedTotalTimeFormatted = FormatDuration(last)
	return out
}

// stretch rewrites times in (from, to] as out[from] plus the original offsets
// scaled by ratio.
func stretch(out, orig []RoutePoint, from, to int, ratio float64) {
	base := out[from].EstimatedTime
	for j := from + 1; j <= to; j++ {
		out[j].EstimatedTime = base + (orig[j].EstimatedTime-orig[from].EstimatedTime)*ratio
	}
}

// Float is a convenience for building optional fields.
func Float(v float64) *float64 { return &v }
