package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backend-routeglobe/internal/route"
)

var (
	ErrParseFailed   = errors.New("failed to parse GPX file")
	ErrWeatherFailed = errors.New("failed to fetch weather")
	ErrGarminFailed  = errors.New("failed to connect to Garmin")
	ErrHistoryFailed = errors.New("failed to analyze history")
	ErrUnavailable   = errors.New("route backend unavailable")
)

// MaxWeatherPoints caps how many route points are sent for a weather lookup.
const MaxWeatherPoints = 20

// Client talks to the route estimation backend that parses GPX files, times
// routes and fetches forecasts.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type File struct {
	Name string
	Data []byte
}

type WeatherResult struct {
	Points         []route.RoutePoint    `json:"points"`
	WeatherSummary *route.WeatherSummary `json:"weather_summary"`
}

type GarminResult struct {
	Connected       bool   `json:"connected"`
	ActivitiesCount int    `json:"activities_count"`
	Error           string `json:"error,omitempty"`
}

type garminGPXResult struct {
	GPX   string `json:"gpx"`
	Error string `json:"error,omitempty"`
}

type HistoryResult struct {
	PaceFactor         float64 `json:"pace_factor"`
	ActivitiesAnalyzed int     `json:"activities_analyzed"`
	Interpretation     string  `json:"interpretation"`
	Error              string  `json:"error,omitempty"`
}

type weatherRequest struct {
	Points    []route.RoutePoint `json:"points"`
	StartTime string             `json:"start_time"`
}

type garminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Upload sends a GPX file for parsing and timing.
func (c *Client) Upload(ctx context.Context, file File, paceFactor float64) (*route.Route, error) {
	body, contentType, err := multipartBody(map[string]string{
		"pace_factor": strconv.FormatFloat(paceFactor, 'f', -1, 64),
	}, "file", []File{file})
	if err != nil {
		return nil, err
	}
	var r route.Route
	if err := c.do(ctx, http.MethodPost, "/api/parse-gpx", contentType, body, &r); err != nil {
		return nil, wrap(ErrParseFailed, err)
	}
	return &r, nil
}

// Weather asks for forecasts along points, which the caller has already
// sampled down to MaxWeatherPoints.
func (c *Client) Weather(ctx context.Context, points []route.RoutePoint, start time.Time) (*WeatherResult, error) {
	if len(points) > MaxWeatherPoints {
		return nil, fmt.Errorf("%w: %d points exceeds %d", ErrWeatherFailed, len(points), MaxWeatherPoints)
	}
	payload, err := json.Marshal(weatherRequest{Points: points, StartTime: start.UTC().Format(time.RFC3339)})
	if err != nil {
		return nil, err
	}
	var res WeatherResult
	if err := c.do(ctx, http.MethodPost, "/api/weather", "application/json", bytes.NewReader(payload), &res); err != nil {
		return nil, wrap(ErrWeatherFailed, err)
	}
	return &res, nil
}

func (c *Client) GarminConnect(ctx context.Context, email, password string) (*GarminResult, error) {
	payload, err := json.Marshal(garminRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var res GarminResult
	if err := c.do(ctx, http.MethodPost, "/api/garmin/connect", "application/json", bytes.NewReader(payload), &res); err != nil {
		return nil, wrap(ErrGarminFailed, err)
	}
	return &res, nil
}

// GarminActivityGPX downloads the GPX track of one Garmin activity through a
// connected backend.
func (c *Client) GarminActivityGPX(ctx context.Context, activityID string) ([]byte, error) {
	if activityID == "" {
		return nil, fmt.Errorf("%w: activity id required", ErrGarminFailed)
	}
	var res garminGPXResult
	path := "/api/garmin/activity/" + url.PathEscape(activityID) + "/gpx"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &res); err != nil {
		return nil, wrap(ErrGarminFailed, err)
	}
	if res.GPX == "" {
		return nil, fmt.Errorf("%w: activity %s has no track", ErrGarminFailed, activityID)
	}
	return []byte(res.GPX), nil
}

// AnalyzeHistory derives a personal pace factor from past GPX tracks.
func (c *Client) AnalyzeHistory(ctx context.Context, files []File) (*HistoryResult, error) {
	body, contentType, err := multipartBody(nil, "files", files)
	if err != nil {
		return nil, err
	}
	var res HistoryResult
	if err := c.do(ctx, http.MethodPost, "/api/analyze-history", contentType, body, &res); err != nil {
		return nil, wrap(ErrHistoryFailed, err)
	}
	return &res, nil
}

func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, nil); err != nil {
		return wrap(ErrUnavailable, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func multipartBody(fields map[string]string, fileField string, files []File) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %v", sentinel, err)
}

// IsBackendError reports whether err came from a failed backend call.
func IsBackendError(err error) bool {
	for _, sentinel := range []error{ErrParseFailed, ErrWeatherFailed, ErrGarminFailed, ErrHistoryFailed, ErrUnavailable} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
