package session

import (
	"time"

	"backend-routeglobe/internal/render"
	"backend-routeglobe/internal/route"
)

type MapLayer string

const (
	MapSatellite MapLayer = "satellite"
	MapTopo      MapLayer = "topo"
)

const (
	MinPaceFactor     = 0.5
	MaxPaceFactor     = 2.0
	DefaultPaceFactor = 1.0
)

// Session is one viewer's render state. Version increases on every route
// replacement; a nil Route means the sample route is shown.
type Session struct {
	ID            string       `json:"id"`
	Version       int64        `json:"version"`
	Route         *route.Route `json:"route,omitempty"`
	SelectedIndex *int         `json:"selected_index,omitempty"`
	MapLayer      MapLayer     `json:"map_layer"`
	PaceFactor    float64      `json:"pace_factor"`
	StartTime     time.Time    `json:"start_time"`
	Projection    string       `json:"projection"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ActiveRoute returns the route being drawn, falling back to the sample route.
func (s *Session) ActiveRoute() route.Route {
	return route.OrDefault(s.Route)
}

// ViewUpdate changes view settings. Nil fields are left alone; ClearSelection
// drops the selected point.
type ViewUpdate struct {
	SelectedIndex  *int       `json:"selected_index"`
	ClearSelection bool       `json:"clear_selection"`
	MapLayer       *string    `json:"map_layer"`
	PaceFactor     *float64   `json:"pace_factor"`
	StartTime      *time.Time `json:"start_time"`
	Projection     *string    `json:"projection"`
}

const (
	MessageFrame  = "frame"
	MessageClosed = "closed"
)

// Message is what viewers receive over the frame stream.
type Message struct {
	Type      string              `json:"type"`
	SessionID string              `json:"session_id"`
	Version   int64               `json:"version"`
	MapLayer  MapLayer            `json:"map_layer,omitempty"`
	Frame     *render.Frame       `json:"frame,omitempty"`
	Scene     *render.SceneUpdate `json:"scene,omitempty"`
	Released  []string            `json:"released,omitempty"`
}
