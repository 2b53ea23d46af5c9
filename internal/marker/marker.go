package marker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Visual constants of a marker
const (
	LineThickness       = 2.0
	SelectedThickness   = 6.0
	DeselectedThickness = 4.0
	CubeSize            = 0.02
	DefaultSphereRadius = 0.5
	SphereAlpha         = 100
	LabelOffset         = 0.7
)

var (
	ErrNonFinitePoint = errors.New("marker point is not finite")
	ErrInvalidID      = errors.New("marker id must be positive")
	ErrNotFound       = errors.New("marker not found")
)

// visual is a node and, once attached to a scene, its handle
type visual struct {
	node   *scene.Node
	handle scene.Handle
}

// LineMarker is a user-drawn annotation line on the model
type LineMarker struct {
	ID               int
	Label            string
	Start            geometry.Vector3
	End              geometry.Vector3
	Color            geometry.Color
	BaseSphereRadius float64

	selected  bool
	finalized bool

	segment   *visual
	startCube *visual
	endCube   *visual
	sphere    *visual
	text      *visual
}

// New creates a marker with its segment, start cube and label visuals.
// The end cube and highlight sphere appear once FinalizeEnd marks the end.
func New(id int, start, end geometry.Vector3, color geometry.Color, label string) (*LineMarker, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if !start.IsFinite() || !end.IsFinite() {
		return nil, ErrNonFinitePoint
	}

	m := &LineMarker{
		ID:               id,
		Label:            label,
		Start:            start,
		End:              end,
		Color:            color,
		BaseSphereRadius: DefaultSphereRadius,
	}
	m.segment = &visual{node: scene.NewSegment(start, end, LineThickness, color)}
	m.startCube = &visual{node: scene.NewCube(start, CubeSize, color)}
	m.text = &visual{node: scene.NewBillboard(m.labelPosition(), m.DisplayText(), geometry.Yellow)}
	return m, nil
}

// Midpoint returns the centre of the segment
func (m *LineMarker) Midpoint() geometry.Vector3 {
	return m.Start.Midpoint(m.End)
}

// Selected reports whether the marker is drawn as selected
func (m *LineMarker) Selected() bool {
	return m.selected
}

// Finalized reports whether the end point was committed
func (m *LineMarker) Finalized() bool {
	return m.finalized
}

// DisplayText returns the label shown next to the marker
func (m *LineMarker) DisplayText() string {
	if strings.TrimSpace(m.Label) == "" {
		return fmt.Sprintf("%d", m.ID)
	}
	return fmt.Sprintf("Marker %d: %s", m.ID, m.Label)
}

func (m *LineMarker) labelPosition() geometry.Vector3 {
	return geometry.NewVector3(m.End.X, m.End.Y+LabelOffset, m.End.Z)
}

// SetLabel changes the label text
func (m *LineMarker) SetLabel(label string) {
	m.Label = label
	m.text.node.Text = m.DisplayText()
}

// FinalizeEnd moves the end point. With isEnd the end cube and the hidden
// highlight sphere are created.
func (m *LineMarker) FinalizeEnd(end geometry.Vector3, isEnd bool) error {
	if !end.IsFinite() {
		return ErrNonFinitePoint
	}
	m.End = end
	if isEnd {
		m.finalized = true
		if m.endCube == nil {
			m.endCube = &visual{node: scene.NewCube(end, CubeSize, m.Color)}
		}
		if m.sphere == nil {
			sphere := scene.NewSphere(m.Midpoint(), m.BaseSphereRadius, m.Color.WithAlpha(SphereAlpha))
			sphere.Visible = false
			m.sphere = &visual{node: sphere}
		}
	}
	m.text.node.Center = m.labelPosition()
	m.render()
	return nil
}

// Select draws the marker highlighted
func (m *LineMarker) Select() {
	m.selected = true
	m.render()
}

// Deselect draws the marker in its own colour
func (m *LineMarker) Deselect() {
	m.selected = false
	m.render()
}

func (m *LineMarker) render() {
	color := m.Color
	thickness := DeselectedThickness
	if m.selected {
		color = geometry.Yellow
		thickness = SelectedThickness
	}

	seg := m.segment.node
	seg.Start, seg.End = m.Start, m.End
	seg.Color = color
	seg.Thickness = thickness

	m.startCube.node.Center = m.Start
	m.startCube.node.Color = color
	m.startCube.node.Visible = m.selected

	if m.finalized {
		m.endCube.node.Center = m.End
		m.endCube.node.Color = color
		m.endCube.node.Visible = m.selected
		m.sphere.node.Center = m.Midpoint()
	}
}

// SphereRadius returns the current highlight sphere radius, 0 before the
// marker is finalized
func (m *LineMarker) SphereRadius() float64 {
	if m.sphere == nil {
		return 0
	}
	return m.sphere.node.Radius
}

// SphereVisible reports whether the highlight sphere is shown
func (m *LineMarker) SphereVisible() bool {
	return m.sphere != nil && m.sphere.node.Visible
}

func (m *LineMarker) resetSphere(visible bool) {
	if m.sphere == nil {
		return
	}
	m.sphere.node.Radius = m.BaseSphereRadius
	m.sphere.node.Visible = visible
}

// Nodes returns the visual nodes that exist so far
func (m *LineMarker) Nodes() []*scene.Node {
	var out []*scene.Node
	for _, v := range m.visuals() {
		out = append(out, v.node)
	}
	return out
}

// Handles returns the scene handles of the attached visuals
func (m *LineMarker) Handles() []scene.Handle {
	var out []scene.Handle
	for _, v := range m.visuals() {
		if v.handle != 0 {
			out = append(out, v.handle)
		}
	}
	return out
}

func (m *LineMarker) visuals() []*visual {
	out := []*visual{m.segment, m.startCube}
	if m.endCube != nil {
		out = append(out, m.endCube)
	}
	if m.sphere != nil {
		out = append(out, m.sphere)
	}
	return append(out, m.text)
}

// SegmentHandle returns the scene handle of the line itself
func (m *LineMarker) SegmentHandle() scene.Handle {
	return m.segment.handle
}
