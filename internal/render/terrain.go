package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/tkrajina/go-elevations/geoelevations"

	"backend-routeglobe/internal/shared/geo"
)

var (
	ErrTerrainUnavailable = errors.New("terrain sampling unavailable")
	ErrNoHeight           = errors.New("no terrain height")
)

// HeightSampler resolves ground heights in meters for a list of coordinates.
// Implementations return one height per input or an error.
type HeightSampler interface {
	Sample(ctx context.Context, points []geo.LatLon) ([]float64, error)
}

// DisabledSampler always fails, forcing the recorded-elevation fallback.
type DisabledSampler struct{}

func (DisabledSampler) Sample(context.Context, []geo.LatLon) ([]float64, error) {
	return nil, ErrTerrainUnavailable
}

// SRTMSampler looks heights up in SRTM tiles, downloading them on first use.
// Lookups are serialized because the tile cache is not safe for concurrent use.
type SRTMSampler struct {
	client   *http.Client
	cacheDir string

	once    sync.Once
	srtm    *geoelevations.Srtm
	initErr error

	mu sync.Mutex
}

// NewSRTMSampler caches tiles under cacheDir, or ~/.geoelevations when empty.
func NewSRTMSampler(client *http.Client, cacheDir string) *SRTMSampler {
	if client == nil {
		client = http.DefaultClient
	}
	return &SRTMSampler{client: client, cacheDir: cacheDir}
}

func (s *SRTMSampler) init() error {
	s.once.Do(func() {
		s.srtm, s.initErr = geoelevations.NewSrtmWithCustomCacheDir(s.client, s.cacheDir)
	})
	return s.initErr
}

func (s *SRTMSampler) Sample(ctx context.Context, points []geo.LatLon) ([]float64, error) {
	if err := s.init(); err != nil {
		return nil, fmt.Errorf("srtm init: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	heights := make([]float64, len(points))
	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h, err := s.srtm.GetElevation(s.client, p.Lat, p.Lon)
		if err != nil {
			return nil, fmt.Errorf("srtm elevation at %f,%f: %w", p.Lat, p.Lon, err)
		}
		// Ocean tiles, voids and tiles missing from the index come back as NaN.
		if math.IsNaN(h) {
			return nil, fmt.Errorf("srtm elevation at %f,%f: %w", p.Lat, p.Lon, ErrNoHeight)
		}
		heights[i] = h
	}
	return heights, nil
}

// sampleHeights runs the sampler and checks it answered for every point.
func sampleHeights(ctx context.Context, s HeightSampler, points []geo.LatLon) ([]float64, error) {
	if s == nil {
		return nil, ErrTerrainUnavailable
	}
	heights, err := s.Sample(ctx, points)
	if err != nil {
		return nil, err
	}
	if len(heights) != len(points) {
		return nil, fmt.Errorf("sampler returned %d heights for %d points", len(heights), len(points))
	}
	for i, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("point %d: %w", i, ErrNoHeight)
		}
	}
	return heights, nil
}
