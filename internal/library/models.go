package library

import (
	"time"

	"backend-routeglobe/internal/route"
)

// SavedRoute is a route kept in the library. CreatedBy is the session that
// saved it and the only one allowed to delete it.
type SavedRoute struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	TotalDistance float64     `json:"total_distance"`
	TotalAscent   float64     `json:"total_ascent"`
	TotalDescent  float64     `json:"total_descent"`
	PathWKT       string      `json:"path"`
	Route         route.Route `json:"route"`
	CreatedBy     string      `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Summary is a list entry without the full point data.
type Summary struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	TotalDistance float64       `json:"total_distance"`
	TotalAscent   float64       `json:"total_ascent"`
	PointCount    int           `json:"point_count"`
	Bounds        *route.Bounds `json:"bounds,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type SaveRequest struct {
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadRequest struct {
	SessionID string `json:"session_id"`
}
