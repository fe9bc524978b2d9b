package weather

import (
	"context"
	"log"
	"math"
	"math/rand"

	"backend-routeglobe/internal/route"
	"backend-routeglobe/internal/shared/geo"
)

const (
	aboveTerrain   = 200.0
	fallbackHeight = 1500.0

	arrowScale     = 2.5
	arrowBarbsWind = 30.0

	rainDrops      = 8
	rainSpread     = 0.003
	rainHeightJump = 100.0

	snowParticles   = 30
	snowSpread      = 0.006
	snowHeightJump  = 300.0
	snowFallBase    = 1.5
	snowFallJitter  = 2.0
	snowCycleBase   = 6.0
	snowCycleJitter = 4.0
	snowFallMeters  = 300.0
	snowDriftScale  = 0.3 * 0.00001
	snowDriftReach  = 10.0
)

const (
	TerrainSampled  = "sampled"
	TerrainFallback = "fallback"
)

// Sampler resolves ground heights for weather segment positions.
type Sampler interface {
	Sample(ctx context.Context, points []geo.LatLon) ([]float64, error)
}

type WindArrow struct {
	ID       string       `json:"id,omitempty"`
	Position geo.Position `json:"position"`
	Rotation float64      `json:"rotation"`
	Scale    float64      `json:"scale"`
	Barbs    bool         `json:"barbs"`
	Speed    float64      `json:"speed"`
}

type RainDrop struct {
	ID       string       `json:"id,omitempty"`
	Position geo.Position `json:"position"`
}

// SnowParticle falls from StartHeight and drifts with the wind, restarting
// every Cycle seconds. Its position is a pure function of elapsed time.
type SnowParticle struct {
	ID          string     `json:"id,omitempty"`
	Origin      geo.LatLon `json:"origin"`
	StartHeight float64    `json:"start_height"`
	FallSpeed   float64    `json:"fall_speed"`
	Cycle       float64    `json:"cycle"`
	Phase       float64    `json:"phase"`
	Drift       geo.LatLon `json:"drift"`
}

// Position returns where the particle is after elapsed seconds.
func (p SnowParticle) Position(elapsed float64) geo.Position {
	t := 0.0
	if p.Cycle > 0 {
		t = math.Mod(elapsed+p.Phase, p.Cycle) / p.Cycle
		if t < 0 {
			t++
		}
	}
	return geo.Position{
		Lat:    p.Origin.Lat + p.Drift.Lat*t*snowDriftReach,
		Lon:    p.Origin.Lon + p.Drift.Lon*t*snowDriftReach,
		Height: p.StartHeight - t*snowFallMeters*p.FallSpeed,
	}
}

type Overlay struct {
	Terrain string         `json:"terrain"`
	Wind    []WindArrow    `json:"wind"`
	Rain    []RainDrop     `json:"rain"`
	Snow    []SnowParticle `json:"snow"`
}

// Len counts drawable overlay entities.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Wind) + len(o.Rain) + len(o.Snow)
}

// BuildOverlay places wind arrows, rain drops and snow particles above each
// weather segment. The same seed always yields the same layout. A nil result
// means there is nothing to draw.
func BuildOverlay(ctx context.Context, summary *route.WeatherSummary, sampler Sampler, seed int64) *Overlay {
	if summary == nil || !summary.Available || len(summary.Segments) == 0 {
		return nil
	}

	bases := make([]float64, len(summary.Segments))
	overlay := &Overlay{Terrain: TerrainFallback, Wind: []WindArrow{}, Rain: []RainDrop{}, Snow: []SnowParticle{}}
	if heights, err := sampleSegments(ctx, sampler, summary.Segments); err != nil {
		log.Printf("weather overlay: terrain sampling failed, using fixed height: %v", err)
		for i := range bases {
			bases[i] = fallbackHeight
		}
	} else {
		overlay.Terrain = TerrainSampled
		for i, h := range heights {
			bases[i] = h + aboveTerrain
		}
	}

	rng := rand.New(rand.NewSource(seed))
	for i, seg := range summary.Segments {
		base := bases[i]
		if seg.HasWind {
			overlay.Wind = append(overlay.Wind, WindArrow{
				Position: geo.Position{Lat: seg.Lat, Lon: seg.Lon, Height: base},
				Rotation: seg.WindDirection + 90,
				Scale:    arrowScale,
				Barbs:    seg.WindSpeed > arrowBarbsWind,
				Speed:    seg.WindSpeed,
			})
		}
		if seg.HasRain {
			for j := 0; j < rainDrops; j++ {
				dLon := (rng.Float64() - 0.5) * rainSpread
				dLat := (rng.Float64() - 0.5) * rainSpread
				overlay.Rain = append(overlay.Rain, RainDrop{Position: geo.Position{
					Lat:    seg.Lat + dLat,
					Lon:    seg.Lon + dLon,
					Height: base + rng.Float64()*rainHeightJump,
				}})
			}
		}
		if seg.HasSnow {
			rad := seg.WindDirection * math.Pi / 180
			drift := geo.LatLon{
				Lat: math.Cos(rad) * seg.WindSpeed * snowDriftScale,
				Lon: math.Sin(rad) * seg.WindSpeed * snowDriftScale,
			}
			for j := 0; j < snowParticles; j++ {
				dLon := (rng.Float64() - 0.5) * snowSpread
				dLat := (rng.Float64() - 0.5) * snowSpread
				p := SnowParticle{
					Origin:      geo.LatLon{Lat: seg.Lat + dLat, Lon: seg.Lon + dLon},
					StartHeight: base + rng.Float64()*snowHeightJump,
					FallSpeed:   snowFallBase + rng.Float64()*snowFallJitter,
					Cycle:       snowCycleBase + rng.Float64()*snowCycleJitter,
					Drift:       drift,
				}
				p.Phase = rng.Float64() * p.Cycle
				overlay.Snow = append(overlay.Snow, p)
			}
		}
	}
	return overlay
}

func sampleSegments(ctx context.Context, sampler Sampler, segments []route.WeatherSegment) ([]float64, error) {
	if sampler == nil {
		return nil, errNoSampler
	}
	points := make([]geo.LatLon, len(segments))
	for i, s := range segments {
		points[i] = geo.LatLon{Lat: s.Lat, Lon: s.Lon}
	}
	heights, err := sampler.Sample(ctx, points)
	if err != nil {
		return nil, err
	}
	if len(heights) != len(points) {
		return nil, errShortSample
	}
	for _, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, errBadHeight
		}
	}
	return heights, nil
}
