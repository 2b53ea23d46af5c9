package model

import (
	"context"
	"errors"

	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/stl"
	"github.com/rs/zerolog"
)

// Colors offered for the model, indexed by the colour picker
var Colors = []geometry.Color{geometry.Blue, geometry.Gray}

// DefaultEmissionAlpha is the strength of the self-lit colour term
const DefaultEmissionAlpha = 20

// ErrNoModel is returned by operations that need a loaded model
var ErrNoModel = errors.New("no model loaded")

// Manager owns the model node in the scene
type Manager struct {
	scene *scene.Scene
	log   zerolog.Logger

	model    *stl.Model
	handle   scene.Handle
	color    geometry.Color
	emission uint8
	path     string
	deps     []string
}

// NewManager creates a manager that places models into s
func NewManager(s *scene.Scene, log zerolog.Logger) *Manager {
	return &Manager{
		scene:    s,
		log:      log.With().Str("component", "model").Logger(),
		color:    Colors[0],
		emission: DefaultEmissionAlpha,
	}
}

// Load reads a model file and replaces the current model with it. On
// error the current model stays in place.
func (m *Manager) Load(ctx context.Context, path string) error {
	md, deps, err := Read(ctx, path)
	if err != nil {
		return err
	}
	m.Set(md)
	m.path = path
	m.deps = deps

	m.log.Info().
		Str("file", path).
		Int("triangles", md.TriangleCount()).
		Int("skipped", md.Skipped).
		Msg("model loaded")
	return nil
}

// Set replaces the current model with an already parsed one
func (m *Manager) Set(md *stl.Model) {
	if m.handle != 0 {
		m.scene.Remove(m.handle)
	}
	m.model = md
	m.handle = m.scene.Add(scene.NewMesh(md.Triangles, m.color))
	m.path = ""
	m.deps = nil
}

// Loaded reports whether a model is present
func (m *Manager) Loaded() bool {
	return m.model != nil
}

// Model returns the current model or nil
func (m *Manager) Model() *stl.Model {
	return m.model
}

// Path returns the file the model was loaded from
func (m *Manager) Path() string {
	return m.path
}

// Dependencies returns the files the current model was built from
func (m *Manager) Dependencies() []string {
	return m.deps
}

// ContainsNode reports whether a scene node belongs to the model
func (m *Manager) ContainsNode(h scene.Handle) bool {
	return m.handle != 0 && h == m.handle
}

// Bounds returns the model's bounding box
func (m *Manager) Bounds() (geometry.BoundingBox, error) {
	if m.model == nil {
		return geometry.BoundingBox{}, ErrNoModel
	}
	return m.model.BoundingBox(), nil
}

// Color returns the current model colour
func (m *Manager) Color() geometry.Color {
	return m.color
}

// SetColor recolours the model
func (m *Manager) SetColor(c geometry.Color) {
	m.color = c
	if n, ok := m.scene.Node(m.handle); ok {
		n.Color = c
	}
}

// EmissionAlpha returns how strongly the model colour is self-lit
func (m *Manager) EmissionAlpha() uint8 {
	return m.emission
}

// SetEmissionAlpha changes the self-lit share of the model colour
func (m *Manager) SetEmissionAlpha(alpha uint8) {
	m.emission = alpha
}

// Unload removes the model from the scene
func (m *Manager) Unload() {
	if m.handle != 0 {
		m.scene.Remove(m.handle)
	}
	m.model = nil
	m.handle = 0
	m.path = ""
	m.deps = nil
}
