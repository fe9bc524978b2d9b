package route

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatDuration renders seconds as "Hh Mm", or "Mm" under an hour.
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0m"
	}
	s := int(seconds)
	hours := s / 3600
	minutes := (s % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(math.Round(meters)))
}

// FormatMeters renders a rounded, thousands-separated height such as "1,085m".
func FormatMeters(meters float64) string {
	return printer.Sprintf("%dm", int(math.Round(meters)))
}

const (
	IconCloud = "cloud"
	IconSnow  = "snow"
	IconRain  = "rain"
	IconSun   = "sun"
)

// WeatherIcon picks the headline icon from summary conditions: snow wins over
// rain, rain over clear skies.
func WeatherIcon(summary *WeatherSummary) string {
	if summary == nil || !summary.Available {
		return IconCloud
	}
	has := func(word string) bool {
		for _, c := range summary.Conditions {
			if strings.Contains(strings.ToLower(c), word) {
				return true
			}
		}
		return false
	}
	switch {
	case has("snow"):
		return IconSnow
	case has("rain"):
		return IconRain
	case has("clear"):
		return IconSun
	}
	return IconCloud
}
