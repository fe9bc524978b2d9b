package render

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSceneClosed = errors.New("scene closed")

// SceneUpdate lists the entity ids a client must drop and the ones it must
// draw, in that order.
type SceneUpdate struct {
	Removed []string `json:"removed"`
	Added   []string `json:"added"`
}

// Scene tracks the entities drawn for one viewer so every redraw starts by
// removing the previous set.
type Scene struct {
	mu     sync.Mutex
	drawn  []string
	closed bool
}

func NewScene() *Scene {
	return &Scene{}
}

// Replace assigns fresh entity ids to every drawable in f and retires the
// previously drawn ids.
func (s *Scene) Replace(f *Frame) (SceneUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SceneUpdate{}, ErrSceneClosed
	}

	update := SceneUpdate{Removed: s.drawn, Added: []string{}}
	if update.Removed == nil {
		update.Removed = []string{}
	}
	add := func() string {
		id := uuid.NewString()
		update.Added = append(update.Added, id)
		return id
	}
	for i := range f.Segments {
		f.Segments[i].ID = add()
	}
	for i := range f.Markers {
		f.Markers[i].ID = add()
	}
	if o := f.Overlay; o != nil {
		for i := range o.Wind {
			o.Wind[i].ID = add()
		}
		for i := range o.Rain {
			o.Rain[i].ID = add()
		}
		for i := range o.Snow {
			o.Snow[i].ID = add()
		}
	}
	s.drawn = update.Added
	return update, nil
}

// Drawn returns the ids currently on screen.
func (s *Scene) Drawn() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.drawn))
	copy(out, s.drawn)
	return out
}

// Close releases every drawn entity. Later calls return nothing.
func (s *Scene) Close() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	released := s.drawn
	s.drawn = nil
	return released
}
