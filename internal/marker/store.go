package marker

import (
	"fmt"
	"time"

	"github.com/philipparndt/findflaw/internal/anim"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/rs/zerolog"
)

// Options tune the store's highlight behaviour
type Options struct {
	HighlightInterval time.Duration
	HighlightGrowth   float64 // Fraction of the base radius added per tick
	MaxSphereRadius   float64
	SphereBaseRadius  float64
}

// DefaultOptions returns the stock highlight settings
func DefaultOptions() Options {
	return Options{
		HighlightInterval: 10 * time.Millisecond,
		HighlightGrowth:   0.2,
		MaxSphereRadius:   100,
		SphereBaseRadius:  DefaultSphereRadius,
	}
}

// Store owns every marker of the session and their scene visuals
type Store struct {
	scene *scene.Scene
	opts  Options
	log   zerolog.Logger

	markers  []*LineMarker
	selected *LineMarker
	nextID   int
	byHandle map[scene.Handle]int

	growing *LineMarker
	timer   *anim.Timer
}

// NewStore creates an empty store drawing into s. The highlight timer runs
// on sched.
func NewStore(s *scene.Scene, sched *anim.Scheduler, opts Options, log zerolog.Logger) *Store {
	st := &Store{
		scene:    s,
		opts:     opts,
		log:      log.With().Str("component", "markers").Logger(),
		nextID:   1,
		byHandle: make(map[scene.Handle]int),
	}
	st.timer = sched.NewTimer(opts.HighlightInterval, st.tick)
	return st
}

// Count returns the number of markers
func (s *Store) Count() int {
	return len(s.markers)
}

// Markers returns the markers in creation/load order
func (s *Store) Markers() []*LineMarker {
	out := make([]*LineMarker, len(s.markers))
	copy(out, s.markers)
	return out
}

// NextID returns the id the next created marker receives
func (s *Store) NextID() int {
	return s.nextID
}

// Selected returns the selected marker or nil
func (s *Store) Selected() *LineMarker {
	return s.selected
}

// ByID looks a marker up by id
func (s *Store) ByID(id int) (*LineMarker, error) {
	for _, m := range s.markers {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// FindByVisual resolves a scene node to the marker it belongs to
func (s *Store) FindByVisual(h scene.Handle) (*LineMarker, bool) {
	id, ok := s.byHandle[h]
	if !ok {
		return nil, false
	}
	m, err := s.ByID(id)
	if err != nil {
		return nil, false
	}
	return m, true
}

// Load replaces all markers with those stored in a line-set file. On any
// error the store is left as it was.
func (s *Store) Load(path string) error {
	records, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.LoadRecords(records); err != nil {
		return fmt.Errorf("invalid line set %s: %w", path, err)
	}
	s.log.Info().Str("file", path).Int("count", len(records)).Msg("lines loaded")
	return nil
}

// LoadRecords replaces all markers. Every record is validated before the
// current set is touched.
func (s *Store) LoadRecords(records []Record) error {
	loaded := make([]*LineMarker, 0, len(records))
	seen := make(map[int]bool, len(records))
	maxID := 0
	for i, r := range records {
		if seen[r.ID] {
			return fmt.Errorf("record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true

		m, err := FromRecord(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		m.BaseSphereRadius = s.opts.SphereBaseRadius
		m.resetSphere(false)
		loaded = append(loaded, m)
		maxID = max(maxID, m.ID)
	}

	s.Clear()
	for _, m := range loaded {
		s.attach(m)
	}
	s.markers = loaded
	s.nextID = maxID + 1
	return nil
}

// Records returns the persisted form of every marker, in order
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, m.Record())
	}
	return out
}

// Save writes every marker to a line-set file
func (s *Store) Save(path string) error {
	if err := WriteFile(path, s.Records()); err != nil {
		return err
	}
	s.log.Info().Str("file", path).Int("count", len(s.markers)).Msg("lines saved")
	return nil
}

// Create adds a finished marker with the next id
func (s *Store) Create(start, end geometry.Vector3, color geometry.Color, label string) (*LineMarker, error) {
	m, err := s.Begin(start, color)
	if err != nil {
		return nil, err
	}
	if err := s.Finish(m, end); err != nil {
		s.Remove(m.ID)
		return nil, err
	}
	if label != "" {
		m.SetLabel(label)
	}
	return m, nil
}

// Begin starts an interactive marker anchored at start
func (s *Store) Begin(start geometry.Vector3, color geometry.Color) (*LineMarker, error) {
	m, err := New(s.nextID, start, start, color, "")
	if err != nil {
		return nil, err
	}
	m.BaseSphereRadius = s.opts.SphereBaseRadius
	s.nextID++
	s.markers = append(s.markers, m)
	s.attach(m)
	return m, nil
}

// Finish commits the end point of a marker started with Begin
func (s *Store) Finish(m *LineMarker, end geometry.Vector3) error {
	if err := m.FinalizeEnd(end, true); err != nil {
		return err
	}
	s.attach(m)
	s.log.Debug().Int("id", m.ID).Msg("marker created")
	return nil
}

// Remove deletes a marker and its visuals
func (s *Store) Remove(id int) error {
	for i, m := range s.markers {
		if m.ID != id {
			continue
		}
		if s.growing == m {
			s.StopHighlight(m)
		}
		if s.selected == m {
			s.Deselect()
		}
		s.detach(m)
		s.markers = append(s.markers[:i], s.markers[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

// SetLabel changes the label of a marker
func (s *Store) SetLabel(id int, label string) error {
	m, err := s.ByID(id)
	if err != nil {
		return err
	}
	m.SetLabel(label)
	return nil
}

// Select makes m the only selected marker. A nil marker just deselects.
func (s *Store) Select(m *LineMarker) {
	s.Deselect()
	s.selected = m
	if m != nil {
		m.Select()
	}
}

// Deselect clears the selection
func (s *Store) Deselect() {
	if s.selected != nil {
		s.selected.Deselect()
	}
	s.selected = nil
}

// Clear removes every marker
func (s *Store) Clear() {
	if s.growing != nil {
		s.StopHighlight(s.growing)
	}
	s.Deselect()
	for _, m := range s.markers {
		s.detach(m)
	}
	s.markers = nil
	s.nextID = 1
}

// attach adds the marker's not yet attached visuals to the scene
func (s *Store) attach(m *LineMarker) {
	for _, v := range m.visuals() {
		if v.handle != 0 {
			continue
		}
		v.handle = s.scene.Add(v.node)
		s.byHandle[v.handle] = m.ID
	}
}

func (s *Store) detach(m *LineMarker) {
	for _, v := range m.visuals() {
		if v.handle == 0 {
			continue
		}
		s.scene.Remove(v.handle)
		delete(s.byHandle, v.handle)
		v.handle = 0
	}
}
