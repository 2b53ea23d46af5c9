package stl

import (
	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Model is a triangle mesh named after its file header
type Model struct {
	Name      string
	Triangles []geometry.Triangle

	// Skipped counts facets dropped because a vertex was NaN or infinite
	Skipped int
}

// NewModel returns an empty model with room for capacity facets
func NewModel(name string, capacity int) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0, max(capacity, 0)),
	}
}

// Add appends a facet. Facets with a non-finite vertex are counted in
// Skipped and left out.
func (m *Model) Add(tri geometry.Triangle) bool {
	if !tri.IsFinite() {
		m.Skipped++
		return false
	}
	m.Triangles = append(m.Triangles, tri)
	return true
}

// TriangleCount returns the number of kept facets
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Empty reports whether the model has nothing to draw or pick
func (m *Model) Empty() bool {
	return len(m.Triangles) == 0
}

// BoundingBox returns the extent of all facets, empty for an empty model
func (m *Model) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Triangles)
}
