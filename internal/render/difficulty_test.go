package render

import (
	"math"
	"testing"

	"backend-routeglobe/internal/route"
)

func TestDifficultyBounds(t *testing.T) {
	for g := -90.0; g <= 90; g += 7.5 {
		for tf := 0.0; tf <= 3; tf += 0.25 {
			for wf := 0.0; wf <= 1; wf += 0.1 {
				d := Score(g, tf, wf)
				if d < 0 || d > 1 {
					t.Fatalf("score(%f,%f,%f) = %f out of range", g, tf, wf, d)
				}
			}
		}
	}
}

func TestDifficultyMonotonicInGradient(t *testing.T) {
	prev := -1.0
	for g := 0.0; g <= 20; g += 0.5 {
		d := Score(g, 1.2, 0.1)
		if d <= prev {
			t.Fatalf("difficulty did not increase at gradient %f", g)
		}
		prev = d
	}
	if Score(25, 1.2, 0.1) != Score(20, 1.2, 0.1) {
		t.Fatalf("gradient term should saturate at 20")
	}
	if Score(-15, 1, 0) != Score(15, 1, 0) {
		t.Fatalf("descents should score like ascents")
	}
}

func TestDifficultyConcreteCases(t *testing.T) {
	flat := route.RoutePoint{Gradient: route.Float(0), TerrainFactor: route.Float(1), WeatherFactor: route.Float(0)}
	if d := Difficulty(flat); d != 0 {
		t.Fatalf("flat point should be 0, got %f", d)
	}
	steep := route.RoutePoint{Gradient: route.Float(25), TerrainFactor: route.Float(1), WeatherFactor: route.Float(0)}
	if d := Difficulty(steep); d != 0.5 {
		t.Fatalf("steep point should be 0.5, got %f", d)
	}
	extreme := route.RoutePoint{Gradient: route.Float(20), TerrainFactor: route.Float(1.5), WeatherFactor: route.Float(0.3)}
	if d := Difficulty(extreme); math.Abs(d-1) > 1e-12 {
		t.Fatalf("extreme point should be 1, got %f", d)
	}
}

func TestDifficultyMissingFieldsAreNeutral(t *testing.T) {
	if d := Difficulty(route.RoutePoint{}); d != 0 {
		t.Fatalf("missing fields should score 0, got %f", d)
	}
	// An explicit zero terrain factor is smoother than nominal and must not
	// be mistaken for an absent one.
	if d := Difficulty(route.RoutePoint{TerrainFactor: route.Float(0)}); d != 0 {
		t.Fatalf("explicit zero terrain factor should clamp to 0, got %f", d)
	}
	if d := Score(0, 1, -0.5); d != 0 {
		t.Fatalf("negative weather factor should not lower the score, got %f", d)
	}
}
