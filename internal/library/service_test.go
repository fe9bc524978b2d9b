package library

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"backend-routeglobe/internal/route"
)

var errDB = errors.New("db down")

func twoPointRoute() route.Route {
	return route.Route{Points: []route.RoutePoint{
		{Lat: 54.5, Lon: -3.0, Elevation: route.Float(100)},
		{Lat: 54.501, Lon: -3.0, Elevation: route.Float(130), DistanceFromStart: 111, EstimatedTime: 90},
	}}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSaveRoute(t *testing.T) {
	mock := newMock(t)
	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO saved_routes`).
		WithArgs(pgxmock.AnyArg(), "Helvellyn", "ridge walk", pgxmock.AnyArg(), 30.0, 0.0, pgxmock.AnyArg(), pgxmock.AnyArg(), "session-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	saved, err := NewService(mock).Save(context.Background(), "Helvellyn", "ridge walk", "session-1", twoPointRoute())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt != createdAt || saved.TotalDistance == 0 {
		t.Fatalf("unexpected saved route %+v", saved)
	}
	if !strings.HasPrefix(saved.PathWKT, "LINESTRING(") {
		t.Fatalf("unexpected wkt %q", saved.PathWKT)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRouteTooShort(t *testing.T) {
	r := twoPointRoute()
	r.Points = r.Points[:1]
	if _, err := NewService(newMock(t)).Save(context.Background(), "x", "", "s", r); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected too short, got %v", err)
	}
}

func TestGetRoute(t *testing.T) {
	mock := newMock(t)
	payload, _ := json.Marshal(twoPointRoute())
	mock.ExpectQuery(`SELECT id, name, description, total_distance_m`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "total_distance_m", "total_ascent_m", "total_descent_m", "path", "route", "created_by", "created_at"}).
			AddRow("route-1", "Helvellyn", "", 111.0, 30.0, 0.0, "LINESTRING(-3 54.5,-3 54.501)", payload, "session-1", time.Now()))

	saved, err := NewService(mock).Get(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(saved.Route.Points) != 2 || *saved.Route.Points[1].Elevation != 130 {
		t.Fatalf("route payload not decoded: %+v", saved.Route)
	}

	mock.ExpectQuery(`SELECT id, name, description, total_distance_m`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	if _, err := NewService(mock).Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRoutes(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name, description, total_distance_m, total_ascent_m, ST_AsText\(path\), created_at`).
		WithArgs(defaultListLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "total_distance_m", "total_ascent_m", "path", "created_at"}).
			AddRow("route-1", "Helvellyn", "", 111.0, 30.0, "LINESTRING(-3 54.5,-2.9 54.6)", time.Now()).
			AddRow("route-2", "Broken", "", 0.0, 0.0, "not wkt", time.Now()))

	routes, err := NewService(mock).List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	b := routes[0].Bounds
	if routes[0].PointCount != 2 || b == nil || b.MinLat != 54.5 || b.MaxLat != 54.6 || b.MinLon != -3 || b.MaxLon != -2.9 {
		t.Fatalf("unexpected summary %+v", routes[0])
	}
	if routes[1].Bounds != nil {
		t.Fatalf("unparseable path should leave bounds empty")
	}
}

func TestListRoutesQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name`).WithArgs(10).WillReturnError(errDB)
	if _, err := NewService(mock).List(context.Background(), 10); !errors.Is(err, errDB) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestDeleteRoute(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT created_by FROM saved_routes`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_by"}).AddRow("session-1"))
	if err := svc.Delete(ctx, "route-1", "session-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	mock.ExpectQuery(`SELECT created_by FROM saved_routes`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_by"}).AddRow("session-1"))
	mock.ExpectExec(`DELETE FROM saved_routes`).
		WithArgs("route-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.Delete(ctx, "route-1", "session-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectQuery(`SELECT created_by FROM saved_routes`).
		WithArgs("route-9").
		WillReturnError(pgx.ErrNoRows)
	if err := svc.Delete(ctx, "route-9", "session-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
