package session

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"backend-routeglobe/internal/auth"
	"backend-routeglobe/internal/backend"
	"backend-routeglobe/internal/route"
)

const testSecret = "secret"

type created struct {
	Session Session            `json:"session"`
	Tokens  auth.TokenResponse `json:"tokens"`
}

func newSessionApp(b *fakeBackend) *fiber.App {
	svc, _ := newTestService(b)
	app := fiber.New()
	RegisterRoutes(app.Group("/sessions"), svc, auth.NewService(testSecret, time.Hour), auth.JWTMiddleware(testSecret))
	return app
}

func createSession(t *testing.T, app *fiber.App) created {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/sessions", nil))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}
	var out created
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return out
}

func authed(method, target, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestSessionHandlersCreateAndGet(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	s := createSession(t, app)
	if s.Session.ID == "" || s.Tokens.AccessToken == "" {
		t.Fatalf("unexpected create response %+v", s)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/"+s.Session.ID, nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sessions/missing", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestSessionHandlersOwnership(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	a := createSession(t, app)
	b := createSession(t, app)

	body := []byte(`{"map_layer":"topo"}`)
	req := httptest.NewRequest(http.MethodPut, "/sessions/"+a.Session.ID+"/view", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token")
	}

	resp, err = app.Test(authed(http.MethodPut, "/sessions/"+a.Session.ID+"/view", b.Tokens.AccessToken, bytes.NewReader(body)))
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden with another session's token")
	}

	resp, err = app.Test(authed(http.MethodPut, "/sessions/"+a.Session.ID+"/view", a.Tokens.AccessToken, bytes.NewReader(body)))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("view status: %v", err)
	}
	var sess Session
	_ = json.NewDecoder(resp.Body).Decode(&sess)
	if sess.MapLayer != MapTopo {
		t.Fatalf("map layer not applied: %+v", sess)
	}
}

func TestSessionHandlersReplaceRoute(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	s := createSession(t, app)

	body, _ := json.Marshal(twoPointRoute())
	resp, err := app.Test(authed(http.MethodPut, "/sessions/"+s.Session.ID+"/route", s.Tokens.AccessToken, bytes.NewReader(body)))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("replace status: %v", err)
	}

	bad := twoPointRoute()
	bad.Points[0].Lat = 91
	body, _ = json.Marshal(bad)
	resp, err = app.Test(authed(http.MethodPut, "/sessions/"+s.Session.ID+"/route", s.Tokens.AccessToken, bytes.NewReader(body)))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for invalid coordinate")
	}

	resp, err = app.Test(authed(http.MethodPut, "/sessions/"+s.Session.ID+"/route", s.Tokens.AccessToken, strings.NewReader("{bad")))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for malformed body")
	}
}

func TestSessionHandlersUpload(t *testing.T) {
	r := route.Default()
	b := &fakeBackend{uploaded: &r}
	app := newSessionApp(b)
	s := createSession(t, app)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, _ := w.CreateFormFile("file", "walk.gpx")
	_, _ = part.Write([]byte("<gpx/>"))
	_ = w.WriteField("pace_factor", "1.25")
	_ = w.Close()

	req := authed(http.MethodPost, "/sessions/"+s.Session.ID+"/upload", s.Tokens.AccessToken, buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status: %v", err)
	}
	if b.gotPace != 1.25 {
		t.Fatalf("pace factor not forwarded: %v", b.gotPace)
	}

	req = authed(http.MethodPost, "/sessions/"+s.Session.ID+"/upload", s.Tokens.AccessToken, strings.NewReader("{}"))
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request without file")
	}
}

func TestSessionHandlersRejectOversizedRoute(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	s := createSession(t, app)

	body := []byte(`{"points":[{"lat":-60,"lon":-170},{"lat":60,"lon":170,"distance_from_start":1e7}]}`)
	resp, err := app.Test(authed(http.MethodPut, "/sessions/"+s.Session.ID+"/route", s.Tokens.AccessToken, bytes.NewReader(body)))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for oversized route")
	}
}

func TestSessionHandlersGarminImport(t *testing.T) {
	r := route.Default()
	b := &fakeBackend{uploaded: &r, garminGPX: []byte("<gpx/>")}
	app := newSessionApp(b)
	s := createSession(t, app)
	base := "/sessions/" + s.Session.ID + "/garmin/"

	resp, err := app.Test(authed(http.MethodPost, base+"4242?pace_factor=0.8", s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("garmin import status: %v", err)
	}
	if b.gotActivity != "4242" || b.gotPace != 0.8 {
		t.Fatalf("unexpected import of %q at pace %v", b.gotActivity, b.gotPace)
	}

	resp, err = app.Test(authed(http.MethodPost, base+"4242?pace_factor=fast", s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for invalid pace")
	}

	b.garminErr = backend.ErrGarminFailed
	resp, err = app.Test(authed(http.MethodPost, base+"4243", s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected bad gateway when garmin fails")
	}
}

func TestSessionHandlersWeatherBackendFailure(t *testing.T) {
	app := newSessionApp(&fakeBackend{weatherErr: backend.ErrWeatherFailed})
	s := createSession(t, app)

	resp, err := app.Test(authed(http.MethodPost, "/sessions/"+s.Session.ID+"/weather", s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected bad gateway")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sessions/"+s.Session.ID+"/impact", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found without weather")
	}
}

func TestSessionHandlersReadViews(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	s := createSession(t, app)
	base := "/sessions/" + s.Session.ID

	cases := []struct {
		path        string
		contentType string
		contains    string
	}{
		{base + "/frame", fiber.MIMEApplicationJSON, `"type":"frame"`},
		{base + "/frame.geojson", "application/geo+json", `"FeatureCollection"`},
		{base + "/route.gpx", "application/gpx+xml", "<trkpt"},
		{base + "/profile", fiber.MIMEApplicationJSON, `"weather_icon"`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status: %v", tc.path, err)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tc.contentType) {
			t.Fatalf("%s content type %q", tc.path, ct)
		}
		data, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(data), tc.contains) {
			t.Fatalf("%s body missing %s", tc.path, tc.contains)
		}
	}
}

func TestSessionHandlersDelete(t *testing.T) {
	app := newSessionApp(&fakeBackend{})
	s := createSession(t, app)

	resp, err := app.Test(authed(http.MethodDelete, "/sessions/"+s.Session.ID, s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
	resp, err = app.Test(authed(http.MethodDelete, "/sessions/"+s.Session.ID, s.Tokens.AccessToken, nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found on second delete")
	}
}
