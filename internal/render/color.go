package render

import (
	"fmt"
	"math"
)

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// band interpolates red and green linearly over [lo, hi).
type band struct {
	lo, hi float64
	r0, r1 float64
	g0, g1 float64
}

var bands = []band{
	{0.00, 0.15, 0, 100, 255, 255},
	{0.15, 0.30, 100, 200, 255, 255},
	{0.30, 0.45, 200, 255, 255, 255},
	{0.45, 0.60, 255, 255, 255, 205},
	{0.60, 0.75, 255, 255, 205, 155},
	{0.75, 0.90, 255, 255, 155, 75},
	{0.90, 1.00, 255, 255, 75, 0},
}

// ColorFor maps a difficulty to the green to red route gradient. Values
// outside [0,1] are clamped.
func ColorFor(difficulty float64) RGB {
	d := clamp01(difficulty)
	b := bands[len(bands)-1]
	for _, candidate := range bands {
		if d < candidate.hi {
			b = candidate
			break
		}
	}
	t := (d - b.lo) / (b.hi - b.lo)
	return RGB{
		R: channel(b.r0 + (b.r1-b.r0)*t),
		G: channel(b.g0 + (b.g1-b.g0)*t),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
