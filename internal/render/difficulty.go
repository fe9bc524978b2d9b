package render

import (
	"math"

	"backend-routeglobe/internal/route"
)

const (
	gradientWeight = 0.5
	terrainWeight  = 0.3
	weatherWeight  = 0.2

	gradientSaturation = 20.0
	terrainSpan        = 0.5
	weatherSaturation  = 0.3
)

// Difficulty scores a point in [0,1] from its slope, terrain roughness and
// weather penalty. Absent fields count as neutral.
func Difficulty(p route.RoutePoint) float64 {
	return Score(p.GradientOrZero(), p.TerrainFactorOrNominal(), p.WeatherFactorOrZero())
}

func Score(gradient, terrainFactor, weatherFactor float64) float64 {
	g := math.Min(math.Abs(gradient)/gradientSaturation, 1)
	tf := clamp01((terrainFactor - 1) / terrainSpan)
	wf := clamp01(weatherFactor / weatherSaturation)
	return clamp01(g*gradientWeight + tf*terrainWeight + wf*weatherWeight)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
