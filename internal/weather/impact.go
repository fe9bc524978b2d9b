package weather

import (
	"fmt"
	"math"

	"backend-routeglobe/internal/route"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Effect is one contributing condition. Factor is the display label such as
// "+40%"; Multiplier the value folded into the total.
type Effect struct {
	Factor      string   `json:"factor"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Multiplier  float64  `json:"multiplier"`
}

// Impact is an advisory pace estimate. It never feeds the difficulty colors.
type Impact struct {
	Factor   float64  `json:"factor"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Advisory bool     `json:"advisory"`
	Effects  []Effect `json:"effects"`
}

type threshold struct {
	above       float64
	multiplier  float64
	description string
	severity    Severity
}

// Bands are ordered strongest first; the first match wins within a category.
var (
	windBands = []threshold{
		{50, 1.4, "Strong winds", SeverityHigh},
		{30, 1.2, "Moderate winds", SeverityMedium},
		{15, 1.1, "Light winds", SeverityLow},
	}
	precipitationBands = []threshold{
		{5, 1.3, "Heavy rain", SeverityHigh},
		{1, 1.15, "Light rain", SeverityMedium},
	}
	snowEffect     = threshold{0, 1.5, "Snow conditions", SeverityHigh}
	extremeCold    = threshold{-10, 1.3, "Extreme cold", SeverityHigh}
	cold           = threshold{0, 1.1, "Cold temperatures", SeverityLow}
	heat           = threshold{30, 1.15, "High heat", SeverityMedium}
	advisoryFactor = 1.2
)

// Estimate combines the summary's wind, precipitation, snow and temperature
// signals into one multiplicative factor. It reports false when the summary
// carries no weather.
func Estimate(summary *route.WeatherSummary) (Impact, bool) {
	if summary == nil || !summary.Available {
		return Impact{}, false
	}
	impact := Impact{Factor: 1.0, Effects: []Effect{}}
	apply := func(t threshold) {
		impact.Factor *= t.multiplier
		impact.Effects = append(impact.Effects, Effect{
			Factor:      percentLabel(t.multiplier),
			Description: t.description,
			Severity:    t.severity,
			Multiplier:  t.multiplier,
		})
	}

	if t, ok := firstAbove(windBands, summary.MaxWind); ok {
		apply(t)
	}
	if t, ok := firstAbove(precipitationBands, summary.TotalPrecipitation); ok {
		apply(t)
	}
	if summary.HasSnow {
		apply(snowEffect)
	}
	if tr := summary.TempRange; tr != nil {
		switch {
		case tr.Min < extremeCold.above:
			apply(extremeCold)
		case tr.Min < cold.above:
			apply(cold)
		case tr.Max > heat.above:
			apply(heat)
		}
	}

	impact.Severity = OverallSeverity(impact.Factor)
	impact.Advisory = impact.Factor > advisoryFactor
	impact.Label = fmt.Sprintf("%.2fx", impact.Factor)
	return impact, true
}

func firstAbove(bands []threshold, v float64) (threshold, bool) {
	for _, t := range bands {
		if v > t.above {
			return t, true
		}
	}
	return threshold{}, false
}

// OverallSeverity bands a total factor: above 1.3 is high, above 1.1 medium.
func OverallSeverity(factor float64) Severity {
	switch {
	case factor > 1.3:
		return SeverityHigh
	case factor > 1.1:
		return SeverityMedium
	}
	return SeverityLow
}

func percentLabel(multiplier float64) string {
	return fmt.Sprintf("+%d%%", int(math.Round((multiplier-1)*100)))
}
