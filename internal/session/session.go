// Package session routes user events to the viewport, the model and the
// marker store, and reports the outcome on a status surface. All methods
// must be called from one goroutine, normally the render loop.
package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/philipparndt/findflaw/internal/anim"
	"github.com/philipparndt/findflaw/internal/config"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/model"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/internal/status"
	"github.com/philipparndt/findflaw/internal/viewport"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
	"github.com/philipparndt/findflaw/pkg/watcher"
	"github.com/rs/zerolog"
)

// Button is an on-screen navigation button
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonCenter
	ButtonZoomIn
	ButtonZoomOut
)

// Session is one open model with its annotations
type Session struct {
	cfg    *config.Config
	log    zerolog.Logger
	status status.Surface

	scene   *scene.Scene
	sched   *anim.Scheduler
	models  *model.Manager
	markers *marker.Store
	view    *viewport.Interaction

	drawing *marker.LineMarker

	watcher      *watcher.FileWatcher
	watchedLines string
	linesPath    string
	linesChanged atomic.Bool
	modelChanged atomic.Bool
}

// New creates an empty session
func New(cfg *config.Config, vp viewer.Viewport, surface status.Surface, log zerolog.Logger) *Session {
	s := scene.New()
	sched := anim.NewScheduler()
	models := model.NewManager(s, log)
	markers := marker.NewStore(s, sched, marker.Options{
		HighlightInterval: cfg.Highlight.Interval,
		HighlightGrowth:   cfg.Highlight.Growth,
		MaxSphereRadius:   cfg.Highlight.MaxRadius,
		SphereBaseRadius:  cfg.Highlight.BaseRadius,
	}, log)

	cam := viewer.NewCamera(geometry.NewBoundingBox())
	view := viewport.New(cam, vp, s, models, markers, sched.NewAnimator(), viewport.Options{
		FocusDuration: cfg.Focus.Duration,
		Acceleration:  cfg.Focus.Acceleration,
		Deceleration:  cfg.Focus.Deceleration,
	}, log)

	return &Session{
		cfg:     cfg,
		log:     log.With().Str("component", "session").Logger(),
		status:  surface,
		scene:   s,
		sched:   sched,
		models:  models,
		markers: markers,
		view:    view,
	}
}

// Scene returns the scene to draw
func (s *Session) Scene() *scene.Scene { return s.scene }

// Camera returns the camera to draw with
func (s *Session) Camera() *viewer.Camera { return s.view.Camera() }

// Markers returns the marker store
func (s *Session) Markers() *marker.Store { return s.markers }

// Models returns the model manager
func (s *Session) Models() *model.Manager { return s.models }

// View returns the viewport interaction
func (s *Session) View() *viewport.Interaction { return s.view }

// PointerDown selects the line under the pointer, or clears the selection
func (s *Session) PointerDown(pos viewer.ScreenPoint) {
	s.markers.Deselect()

	hit, ok := s.view.PickLine(pos)
	if !ok || hit.Marker == nil {
		s.markers.Select(nil)
		s.status.SetStatus(status.NoLineSelected)
		s.status.UpdateSelectedLine(nil)
		return
	}

	s.markers.Select(hit.Marker)
	s.status.SetStatus(status.LineSelected)
	s.status.UpdateSelectedLine(hit.Marker)
}

// Key applies a navigation key chord
func (s *Session) Key(key viewport.Key, mods viewport.Modifiers) bool {
	return s.view.HandleKey(key, mods)
}

// Press applies an on-screen navigation button
func (s *Session) Press(b Button) {
	pan, fov := s.cfg.Navigation.PanStep, s.cfg.Navigation.FovStep
	switch b {
	case ButtonUp:
		s.view.Pan(0, +pan)
	case ButtonDown:
		s.view.Pan(0, -pan)
	case ButtonLeft:
		s.view.Pan(+pan, 0)
	case ButtonRight:
		s.view.Pan(-pan, 0)
	case ButtonCenter:
		s.view.ZoomExtents()
	case ButtonZoomIn:
		s.view.ChangeFov(-fov)
	case ButtonZoomOut:
		s.view.ChangeFov(+fov)
	}
}

// ListSelect selects a marker by id; id 0 clears the selection
func (s *Session) ListSelect(id int) {
	if id == 0 {
		s.markers.Select(nil)
		s.status.UpdateSelectedLine(nil)
		return
	}
	m, err := s.markers.ByID(id)
	if err != nil {
		s.log.Warn().Err(err).Msg("list selection")
		s.markers.Select(nil)
		s.status.UpdateSelectedLine(nil)
		return
	}
	s.markers.Select(m)
	s.status.UpdateSelectedLine(m)
}

// ListActivate focuses the camera on a marker
func (s *Session) ListActivate(id int) {
	m, err := s.markers.ByID(id)
	if err != nil {
		s.log.Warn().Err(err).Msg("list activation")
		return
	}
	s.view.FocusOnMarkerAnimated(m)
}

// HighlightPress starts growing the marker's highlight sphere
func (s *Session) HighlightPress(id int) {
	if m, err := s.markers.ByID(id); err == nil {
		s.markers.StartHighlight(m)
	}
}

// HighlightRelease stops the highlight sphere
func (s *Session) HighlightRelease(id int) {
	m, _ := s.markers.ByID(id)
	s.markers.StopHighlight(m)
}

// SetLabel renames a marker and refreshes the selection summary
func (s *Session) SetLabel(id int, label string) error {
	if err := s.markers.SetLabel(id, label); err != nil {
		return err
	}
	if sel := s.markers.Selected(); sel != nil && sel.ID == id {
		s.status.UpdateSelectedLine(sel)
	}
	return nil
}

// StartDrawing anchors a new marker on the model under the pointer
func (s *Session) StartDrawing(pos viewer.ScreenPoint) bool {
	s.CancelDrawing()
	hit, ok := s.view.PickModel(pos)
	if !ok {
		return false
	}
	m, err := s.markers.Begin(hit.Point, s.cfg.MarkerColor())
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot start line")
		return false
	}
	s.drawing = m
	return true
}

// Drawing returns the marker being drawn, if any
func (s *Session) Drawing() *marker.LineMarker {
	return s.drawing
}

// FinishDrawing ends the marker on the model under the pointer. Off the
// model the line is discarded.
func (s *Session) FinishDrawing(pos viewer.ScreenPoint) (*marker.LineMarker, bool) {
	m := s.drawing
	if m == nil {
		return nil, false
	}
	s.drawing = nil

	hit, ok := s.view.PickModel(pos)
	if !ok {
		s.markers.Remove(m.ID)
		return nil, false
	}
	if err := s.markers.Finish(m, hit.Point); err != nil {
		s.log.Warn().Err(err).Msg("cannot finish line")
		s.markers.Remove(m.ID)
		return nil, false
	}
	s.status.UpdateLineCount(s.markers.Count())
	return m, true
}

// CancelDrawing discards a marker that was started but not finished
func (s *Session) CancelDrawing() {
	if s.drawing != nil {
		s.markers.Remove(s.drawing.ID)
		s.drawing = nil
	}
}

// LoadModel replaces the model, frames it and applies the initial view
func (s *Session) LoadModel(ctx context.Context, path string) error {
	if err := s.models.Load(ctx, path); err != nil {
		s.status.SetStatus(fmt.Sprintf("Error loading model: %v", err))
		return err
	}
	s.SetModelColor(s.cfg.Window.ModelColor)
	s.status.SetStatus(status.ModelLoaded)

	s.view.ZoomExtents()
	s.view.SetInitialView(s.cfg.TopView())

	if s.cfg.Watch.Enabled {
		s.watchModel()
	}
	return nil
}

// LoadLines replaces all markers with a line-set file
func (s *Session) LoadLines(path string) error {
	s.CancelDrawing()
	if err := s.markers.Load(path); err != nil {
		s.status.SetStatus(fmt.Sprintf("Error loading lines: %v", err))
		return err
	}
	s.linesPath = path
	s.status.SetStatus(status.LinesLoaded)
	s.status.UpdateLineCount(s.markers.Count())
	s.status.UpdateSelectedLine(nil)
	return nil
}

// SaveLines writes all markers to a line-set file
func (s *Session) SaveLines(path string) error {
	if err := s.markers.Save(path); err != nil {
		s.status.SetStatus(fmt.Sprintf("Error saving lines: %v", err))
		return err
	}
	s.linesPath = path
	s.status.SetStatus(status.LinesSaved)
	return nil
}

// LinesPath returns the line-set file last loaded or saved
func (s *Session) LinesPath() string {
	return s.linesPath
}

// SetInitialView looks at the model from above or below
func (s *Session) SetInitialView(top bool) {
	s.view.SetInitialView(top)
}

// SetModelColor picks one of model.Colors
func (s *Session) SetModelColor(index int) {
	if index < 0 || index >= len(model.Colors) {
		index = 0
	}
	s.models.SetColor(model.Colors[index])
}

// SetEmissionAlpha changes how strongly the model is self-lit
func (s *Session) SetEmissionAlpha(alpha uint8) {
	s.models.SetEmissionAlpha(alpha)
}

// Resize updates the drawing surface size
func (s *Session) Resize(width, height int) {
	s.view.Resize(viewer.Viewport{Width: float64(width), Height: float64(height)})
}

// WatchLines reloads the line-set file whenever it changes on disk
func (s *Session) WatchLines(path string) error {
	s.linesPath = path
	if err := s.watch([]string{path}, &s.linesChanged); err != nil {
		s.log.Warn().Err(err).Str("file", path).Msg("auto-reload of lines will not be available")
		return err
	}
	s.watchedLines = path
	return nil
}

// watchModel replaces the watched model files, keeping a watched line set
func (s *Session) watchModel() {
	if s.watcher != nil {
		if err := s.watcher.RemoveAll(); err != nil {
			s.log.Warn().Err(err).Msg("cannot stop watching the previous model")
		}
		if s.watchedLines != "" {
			if err := s.watch([]string{s.watchedLines}, &s.linesChanged); err != nil {
				s.log.Warn().Err(err).Str("file", s.watchedLines).Msg("lines are no longer watched")
				s.watchedLines = ""
			}
		}
	}
	if err := s.watch(s.models.Dependencies(), &s.modelChanged); err != nil {
		s.log.Warn().Err(err).Str("file", s.models.Path()).Msg("auto-reload of the model will not be available")
	}
}

func (s *Session) watch(files []string, flag *atomic.Bool) error {
	if s.watcher == nil {
		fw, err := watcher.NewFileWatcher(s.cfg.Watch.Debounce, s.log)
		if err != nil {
			return err
		}
		fw.Start()
		s.watcher = fw
	}
	return s.watcher.Watch(files, func(string) { flag.Store(true) })
}

// Frame advances timers and animations and applies pending reloads
func (s *Session) Frame(ctx context.Context, dt time.Duration) {
	if s.modelChanged.Swap(false) && s.models.Path() != "" {
		if err := s.models.Load(ctx, s.models.Path()); err != nil {
			s.status.SetStatus(fmt.Sprintf("Error reloading model: %v", err))
		} else {
			s.status.SetStatus(status.ModelLoaded)
		}
	}
	if s.linesChanged.Swap(false) && s.linesPath != "" {
		s.CancelDrawing()
		if err := s.markers.Load(s.linesPath); err != nil {
			s.status.SetStatus(fmt.Sprintf("Error reloading lines: %v", err))
		} else {
			s.status.SetStatus(status.LinesReloaded)
			s.status.UpdateLineCount(s.markers.Count())
			s.status.UpdateSelectedLine(nil)
		}
	}
	s.sched.Advance(dt)
}

// Close stops file watching
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
