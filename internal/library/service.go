package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"backend-routeglobe/internal/db"
	"backend-routeglobe/internal/route"
)

var (
	ErrNotFound  = errors.New("saved route not found")
	ErrForbidden = errors.New("saved route belongs to another session")
	ErrTooShort  = errors.New("route needs at least two points to save")
)

const defaultListLimit = 50

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Save(ctx context.Context, name, description, createdBy string, r route.Route) (SavedRoute, error) {
	if len(r.Points) < 2 {
		return SavedRoute{}, ErrTooShort
	}
	r = route.Normalize(r)
	payload, err := json.Marshal(r)
	if err != nil {
		return SavedRoute{}, err
	}

	saved := SavedRoute{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   description,
		TotalDistance: r.TotalDistance,
		TotalAscent:   r.TotalAscent,
		TotalDescent:  r.TotalDescent,
		PathWKT:       PathWKT(r),
		Route:         r,
		CreatedBy:     createdBy,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_routes (id, name, description, total_distance_m, total_ascent_m, total_descent_m, path, route, created_by)
		VALUES ($1,$2,$3,$4,$5,$6, ST_GeogFromText($7), $8, $9)
		RETURNING created_at
	`, saved.ID, saved.Name, saved.Description, saved.TotalDistance, saved.TotalAscent, saved.TotalDescent, saved.PathWKT, payload, saved.CreatedBy)
	if err := row.Scan(&saved.CreatedAt); err != nil {
		return SavedRoute{}, err
	}
	return saved, nil
}

func (s *Service) Get(ctx context.Context, id string) (SavedRoute, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, total_distance_m, total_ascent_m, total_descent_m, ST_AsText(path), route, created_by, created_at
		FROM saved_routes WHERE id=$1
	`, id)
	var saved SavedRoute
	var payload []byte
	if err := row.Scan(&saved.ID, &saved.Name, &saved.Description, &saved.TotalDistance, &saved.TotalAscent, &saved.TotalDescent, &saved.PathWKT, &payload, &saved.CreatedBy, &saved.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedRoute{}, ErrNotFound
		}
		return SavedRoute{}, err
	}
	if err := json.Unmarshal(payload, &saved.Route); err != nil {
		return SavedRoute{}, fmt.Errorf("decode saved route %s: %w", id, err)
	}
	return saved, nil
}

// List returns the newest routes first. Bounds come from the stored path.
func (s *Service) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, total_distance_m, total_ascent_m, ST_AsText(path), created_at
		FROM saved_routes
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []Summary{}
	for rows.Next() {
		var sum Summary
		var path string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Description, &sum.TotalDistance, &sum.TotalAscent, &path, &sum.CreatedAt); err != nil {
			return nil, err
		}
		if line, err := wkt.UnmarshalLineString(path); err == nil && len(line) > 0 {
			sum.PointCount = len(line)
			sum.Bounds = lineBounds(line)
		}
		routes = append(routes, sum)
	}
	return routes, rows.Err()
}

func (s *Service) Delete(ctx context.Context, id, requester string) error {
	var owner string
	if err := s.db.QueryRow(ctx, `SELECT created_by FROM saved_routes WHERE id=$1`, id).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if owner != requester {
		return ErrForbidden
	}
	_, err := s.db.Exec(ctx, `DELETE FROM saved_routes WHERE id=$1`, id)
	return err
}

// PathWKT encodes the route geometry as a WKT LINESTRING in lon/lat order.
func PathWKT(r route.Route) string {
	line := make(orb.LineString, len(r.Points))
	for i, p := range r.Points {
		line[i] = orb.Point{p.Lon, p.Lat}
	}
	return wkt.MarshalString(line)
}

func lineBounds(line orb.LineString) *route.Bounds {
	b := line.Bound()
	return &route.Bounds{MinLat: b.Min.Lat(), MaxLat: b.Max.Lat(), MinLon: b.Min.Lon(), MaxLon: b.Max.Lon()}
}
