package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"backend-routeglobe/internal/backend"
	"backend-routeglobe/internal/render"
	"backend-routeglobe/internal/route"
	"backend-routeglobe/internal/weather"
)

var (
	ErrStaleRoute  = errors.New("route changed while weather was loading")
	ErrInvalidView = errors.New("invalid view update")
	ErrNoWeather   = errors.New("route has no weather summary")
)

// RouteBackend is the part of the analysis backend sessions depend on.
type RouteBackend interface {
	Upload(ctx context.Context, file backend.File, paceFactor float64) (*route.Route, error)
	Weather(ctx context.Context, points []route.RoutePoint, start time.Time) (*backend.WeatherResult, error)
	GarminActivityGPX(ctx context.Context, activityID string) ([]byte, error)
}

// Publisher fans a payload out to every viewer of a session.
type Publisher interface {
	Broadcast(sessionID string, payload []byte)
}

type Service struct {
	store   Store
	backend RouteBackend
	sampler render.HeightSampler
	pub     Publisher
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
	views map[string]*view
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// view is what this instance last drew for a session. msg is reused by reads
// until the session's UpdatedAt moves past stamp.
type view struct {
	scene *render.Scene
	msg   *Message
	stamp time.Time
}

func NewService(store Store, rb RouteBackend, sampler render.HeightSampler, pub Publisher) *Service {
	if sampler == nil {
		sampler = render.DisabledSampler{}
	}
	return &Service{
		store:   store,
		backend: rb,
		sampler: sampler,
		pub:     pub,
		now:     time.Now,
		locks:   map[string]*sessionLock{},
		views:   map[string]*view{},
	}
}

// lock serializes work on one session. Entries are dropped once no caller
// holds or waits on them.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// load reads a session and forgets local state for ones that are gone.
func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s.forget(id)
	}
	return sess, err
}

// forget drops the view of a session that no longer exists and tells its
// viewers which entities to release.
func (s *Service) forget(id string) {
	s.mu.Lock()
	v, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	released := v.scene.Close()
	if released == nil {
		released = []string{}
	}
	s.publish(id, Message{Type: MessageClosed, SessionID: id, Released: released})
}

// Sweep forgets views of sessions that expired from the store and reports
// how many it dropped.
func (s *Service) Sweep(ctx context.Context) int {
	s.mu.Lock()
	ids := make([]string, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	dropped := 0
	for _, id := range ids {
		unlock := s.lock(id)
		if _, err := s.load(ctx, id); errors.Is(err, ErrNotFound) {
			dropped++
		}
		unlock()
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(ctx); n > 0 {
				log.Printf("sessions: released %d expired views", n)
			}
		}
	}
}

func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.now().UTC()
	sess := &Session{
		ID:         uuid.NewString(),
		MapLayer:   MapSatellite,
		PaceFactor: DefaultPaceFactor,
		StartTime:  now,
		Projection: string(render.ProjectionProportional),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

// Delete removes the session and tears down its drawn entities. Viewers get
// a closed message listing the released ids.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.forget(id)
		}
		return err
	}
	if s.hasView(id) {
		s.forget(id)
		return nil
	}
	s.publish(id, Message{Type: MessageClosed, SessionID: id, Released: []string{}})
	return nil
}

func (s *Service) hasView(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.views[id]
	return ok
}

// ReplaceRoute validates r and swaps it in as the next version.
func (s *Service) ReplaceRoute(ctx context.Context, id string, r route.Route) (*Session, error) {
	if err := route.Validate(r); err != nil {
		return nil, err
	}
	if err := render.CheckSize(r.Points); err != nil {
		return nil, err
	}
	r = route.Normalize(r)

	return s.mutate(ctx, id, func(sess *Session) error {
		sess.Route = &r
		sess.Version++
		if sess.SelectedIndex != nil && *sess.SelectedIndex >= len(r.Points) {
			sess.SelectedIndex = nil
		}
		return nil
	})
}

// Upload sends a track file to the backend and replaces the route with the
// parsed result. A zero paceFactor uses the session's. A backend failure
// leaves the current route in place.
func (s *Service) Upload(ctx context.Context, id string, file backend.File, paceFactor float64) (*Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if paceFactor == 0 {
		paceFactor = sess.PaceFactor
	}
	if paceFactor < MinPaceFactor || paceFactor > MaxPaceFactor {
		return nil, fmt.Errorf("%w: pace factor %.2f outside %.1f..%.1f", ErrInvalidView, paceFactor, MinPaceFactor, MaxPaceFactor)
	}
	parsed, err := s.backend.Upload(ctx, file, paceFactor)
	if err != nil {
		return nil, err
	}
	return s.ReplaceRoute(ctx, id, *parsed)
}

// ImportGarmin downloads the track of a Garmin activity and loads it the way
// Upload loads a file.
func (s *Service) ImportGarmin(ctx context.Context, id, activityID string, paceFactor float64) (*Session, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	data, err := s.backend.GarminActivityGPX(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, id, backend.File{Name: activityID + ".gpx", Data: data}, paceFactor)
}

// FetchWeather asks the backend for weather along the current route and
// merges it. The call runs without holding the session lock; if the route
// was replaced meanwhile the result is discarded with ErrStaleRoute.
func (s *Service) FetchWeather(ctx context.Context, id string) (*Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	version := sess.Version
	current := sess.ActiveRoute()
	indices := route.SampleIndices(len(current.Points), backend.MaxWeatherPoints)

	result, err := s.backend.Weather(ctx, route.Pick(current.Points, indices), sess.StartTime)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Version != version {
			log.Printf("session %s: dropping weather for version %d, now at %d", id, version, sess.Version)
			return ErrStaleRoute
		}
		merged := sess.ActiveRoute().MergeWeather(indices, result.Points, result.WeatherSummary)
		sess.Route = &merged
		sess.Version++
		return nil
	})
}

func (s *Service) UpdateView(ctx context.Context, id string, u ViewUpdate) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		if u.ClearSelection {
			sess.SelectedIndex = nil
		}
		if u.SelectedIndex != nil {
			n := len(sess.ActiveRoute().Points)
			if *u.SelectedIndex < 0 || *u.SelectedIndex >= n {
				return fmt.Errorf("%w: selected index %d outside 0..%d", ErrInvalidView, *u.SelectedIndex, n-1)
			}
			idx := *u.SelectedIndex
			sess.SelectedIndex = &idx
		}
		if u.MapLayer != nil {
			layer := MapLayer(*u.MapLayer)
			if layer != MapSatellite && layer != MapTopo {
				return fmt.Errorf("%w: map layer %q", ErrInvalidView, *u.MapLayer)
			}
			sess.MapLayer = layer
		}
		if u.PaceFactor != nil {
			if *u.PaceFactor < MinPaceFactor || *u.PaceFactor > MaxPaceFactor {
				return fmt.Errorf("%w: pace factor %.2f outside %.1f..%.1f", ErrInvalidView, *u.PaceFactor, MinPaceFactor, MaxPaceFactor)
			}
			sess.PaceFactor = *u.PaceFactor
		}
		if u.StartTime != nil {
			sess.StartTime = u.StartTime.UTC()
		}
		if u.Projection != nil {
			p, ok := render.ParseProjection(*u.Projection)
			if !ok {
				return fmt.Errorf("%w: projection %q", ErrInvalidView, *u.Projection)
			}
			sess.Projection = string(p)
		}
		return nil
	})
}

// Frame returns the current draw list with every drawn entity listed as
// added, the form a viewer joining late needs. It only redraws, and
// broadcasts, when the session changed since the last draw.
func (s *Service) Frame(ctx context.Context, id string) (*Message, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	v := s.views[id]
	s.mu.Unlock()
	if v == nil || v.msg == nil || !v.stamp.Equal(sess.UpdatedAt) {
		if v, err = s.redraw(ctx, sess); err != nil {
			return nil, err
		}
	}
	msg := *v.msg
	msg.Scene = &render.SceneUpdate{Removed: []string{}, Added: v.scene.Drawn()}
	return &msg, nil
}

// Snapshot encodes the current frame for a viewer that just connected.
func (s *Service) Snapshot(id string) ([]byte, error) {
	msg, err := s.Frame(context.Background(), id)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

func (s *Service) CurrentRoute(ctx context.Context, id string) (route.Route, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return route.Route{}, err
	}
	return sess.ActiveRoute(), nil
}

func (s *Service) Profile(ctx context.Context, id string) (route.Profile, error) {
	r, err := s.CurrentRoute(ctx, id)
	if err != nil {
		return route.Profile{}, err
	}
	return route.BuildProfile(r), nil
}

func (s *Service) Impact(ctx context.Context, id string) (weather.Impact, error) {
	r, err := s.CurrentRoute(ctx, id)
	if err != nil {
		return weather.Impact{}, err
	}
	impact, ok := weather.Estimate(r.WeatherSummary)
	if !ok {
		return weather.Impact{}, ErrNoWeather
	}
	return impact, nil
}

func (s *Service) GPX(ctx context.Context, id string) ([]byte, error) {
	r, err := s.CurrentRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	return render.ExportGPX("Route "+id, r)
}

// mutate applies fn to the stored session, saves it and redraws, all under
// the session lock so viewers see versions in order.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	if _, err := s.redraw(ctx, sess); err != nil {
		log.Printf("session %s: redraw: %v", id, err)
	}
	return sess, nil
}

// redraw builds the frame for sess, replaces the drawn scene with it and
// broadcasts the change. Callers hold the session lock.
func (s *Service) redraw(ctx context.Context, sess *Session) (*view, error) {
	projection, _ := render.ParseProjection(sess.Projection)
	frame := render.Build(ctx, sess.Route, render.Options{
		Sampler:    s.sampler,
		Selected:   sess.SelectedIndex,
		Projection: projection,
		Version:    sess.Version,
		Seed:       overlaySeed(sess.ID, sess.Version),
	})

	s.mu.Lock()
	v, ok := s.views[sess.ID]
	if !ok {
		v = &view{scene: render.NewScene()}
		s.views[sess.ID] = v
	}
	s.mu.Unlock()

	update, err := v.scene.Replace(&frame)
	if err != nil {
		return nil, err
	}
	v.msg = &Message{
		Type:      MessageFrame,
		SessionID: sess.ID,
		Version:   sess.Version,
		MapLayer:  sess.MapLayer,
		Frame:     &frame,
		Scene:     &update,
	}
	v.stamp = sess.UpdatedAt
	s.publish(sess.ID, *v.msg)
	return v, nil
}

func (s *Service) publish(id string, msg Message) {
	if s.pub == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("session %s: encode %s message: %v", id, msg.Type, err)
		return
	}
	s.pub.Broadcast(id, payload)
}

func overlaySeed(id string, version int64) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64()) ^ version
}
