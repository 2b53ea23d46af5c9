package scene

import (
	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Handle identifies a node in a Scene. The zero handle is never issued.
type Handle uint64

// Kind is the shape of a node
type Kind int

const (
	KindMesh Kind = iota
	KindSegment
	KindCube
	KindSphere
	KindBillboard
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindSegment:
		return "segment"
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	case KindBillboard:
		return "billboard"
	}
	return "unknown"
}

// Node is a drawable, optionally pickable, element of the scene.
// Only the fields relevant to its Kind are used.
type Node struct {
	Kind     Kind
	Visible  bool
	Pickable bool
	Color    geometry.Color

	// Mesh
	Triangles []geometry.Triangle
	bounds    geometry.BoundingBox

	// Segment; Thickness is in screen pixels
	Start     geometry.Vector3
	End       geometry.Vector3
	Thickness float64

	// Cube (Size is the side length), sphere (Radius) and billboard
	Center geometry.Vector3
	Size   float64
	Radius float64

	// Billboard
	Text string
}

// NewMesh creates a visible, pickable triangle mesh node
func NewMesh(triangles []geometry.Triangle, color geometry.Color) *Node {
	n := &Node{
		Kind:      KindMesh,
		Visible:   true,
		Pickable:  true,
		Color:     color,
		Triangles: triangles,
	}
	n.RefreshBounds()
	return n
}

// NewSegment creates a visible, pickable line segment
func NewSegment(start, end geometry.Vector3, thickness float64, color geometry.Color) *Node {
	return &Node{
		Kind:      KindSegment,
		Visible:   true,
		Pickable:  true,
		Color:     color,
		Start:     start,
		End:       end,
		Thickness: thickness,
	}
}

// NewCube creates a visible, pickable axis-aligned cube
func NewCube(center geometry.Vector3, size float64, color geometry.Color) *Node {
	return &Node{
		Kind:     KindCube,
		Visible:  true,
		Pickable: true,
		Color:    color,
		Center:   center,
		Size:     size,
	}
}

// NewSphere creates a visible, pickable sphere
func NewSphere(center geometry.Vector3, radius float64, color geometry.Color) *Node {
	return &Node{
		Kind:     KindSphere,
		Visible:  true,
		Pickable: true,
		Color:    color,
		Center:   center,
		Radius:   radius,
	}
}

// NewBillboard creates a screen-facing text label. Labels are never picked.
func NewBillboard(position geometry.Vector3, text string, color geometry.Color) *Node {
	return &Node{
		Kind:    KindBillboard,
		Visible: true,
		Color:   color,
		Center:  position,
		Text:    text,
	}
}

// RefreshBounds recomputes the cached mesh bounds after Triangles changed
func (n *Node) RefreshBounds() {
	n.bounds = geometry.BoundsOf(n.Triangles)
}

// Bounds returns the world-space extent of the node
func (n *Node) Bounds() geometry.BoundingBox {
	switch n.Kind {
	case KindMesh:
		return n.bounds
	case KindSegment:
		b := geometry.NewBoundingBox()
		b.Extend(n.Start)
		b.Extend(n.End)
		return b
	case KindCube:
		return geometry.BoxAround(n.Center, n.Size)
	case KindSphere:
		return geometry.BoxAround(n.Center, 2*n.Radius)
	}
	return geometry.NewBoundingBox()
}
