package scene

import (
	"math"
	"sort"

	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
)

// Scene is an arena of nodes addressed by stable handles. Draw order is
// insertion order.
type Scene struct {
	nodes map[Handle]*Node
	order []Handle
	next  Handle
}

// New creates an empty scene
func New() *Scene {
	return &Scene{
		nodes: make(map[Handle]*Node),
	}
}

// Add inserts a node and returns its handle
func (s *Scene) Add(n *Node) Handle {
	s.next++
	h := s.next
	s.nodes[h] = n
	s.order = append(s.order, h)
	return h
}

// Remove deletes a node. Removing an unknown handle returns false.
func (s *Scene) Remove(h Handle) bool {
	if _, ok := s.nodes[h]; !ok {
		return false
	}
	delete(s.nodes, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Node returns the node behind a handle for reading or mutation
func (s *Scene) Node(h Handle) (*Node, bool) {
	n, ok := s.nodes[h]
	return n, ok
}

// Contains reports whether the handle is part of the scene
func (s *Scene) Contains(h Handle) bool {
	_, ok := s.nodes[h]
	return ok
}

// Handles returns all handles in draw order
func (s *Scene) Handles() []Handle {
	out := make([]Handle, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of nodes
func (s *Scene) Len() int {
	return len(s.order)
}

// Each calls fn for every node in draw order
func (s *Scene) Each(fn func(Handle, *Node)) {
	for _, h := range s.order {
		fn(h, s.nodes[h])
	}
}

// Bounds returns the extent of all visible nodes
func (s *Scene) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, h := range s.order {
		n := s.nodes[h]
		if n.Visible {
			bbox.Union(n.Bounds())
		}
	}
	return bbox
}

// Hit is one ray intersection with a node
type Hit struct {
	Handle   Handle
	Node     *Node
	Point    geometry.Vector3
	Distance float64 // Along the ray
}

// Intersections returns every visible, pickable node hit by the ray,
// nearest first. Segments are hit when the ray passes within half their
// on-screen thickness.
func (s *Scene) Intersections(ray geometry.Ray, cam *viewer.Camera, vp viewer.Viewport) []Hit {
	var hits []Hit
	for _, h := range s.order {
		n := s.nodes[h]
		if !n.Visible || !n.Pickable {
			continue
		}
		if t, p, ok := intersect(n, ray, cam, vp); ok {
			hits = append(hits, Hit{Handle: h, Node: n, Point: p, Distance: t})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersect(n *Node, ray geometry.Ray, cam *viewer.Camera, vp viewer.Viewport) (float64, geometry.Vector3, bool) {
	switch n.Kind {
	case KindMesh:
		if _, ok := ray.IntersectBox(n.bounds); !ok {
			return 0, geometry.Vector3{}, false
		}
		best := math.Inf(1)
		for _, tri := range n.Triangles {
			if t, ok := ray.IntersectTriangle(tri); ok && t < best {
				best = t
			}
		}
		if math.IsInf(best, 1) {
			return 0, geometry.Vector3{}, false
		}
		return best, ray.PointAt(best), true

	case KindSegment:
		t, p, dist := ray.ClosestToSegment(n.Start, n.End)
		depth := p.Sub(cam.Position).Dot(cam.LookDirection.Normalize())
		if cam.IsPerspective() && depth <= 0 {
			return 0, geometry.Vector3{}, false
		}
		tolerance := cam.WorldPerPixel(depth, vp) * math.Max(n.Thickness, 1) / 2
		if dist > tolerance {
			return 0, geometry.Vector3{}, false
		}
		return t, p, true

	case KindCube:
		t, ok := ray.IntersectBox(geometry.BoxAround(n.Center, n.Size))
		return t, ray.PointAt(t), ok

	case KindSphere:
		t, ok := ray.IntersectSphere(n.Center, n.Radius)
		return t, ray.PointAt(t), ok
	}
	return 0, geometry.Vector3{}, false
}

// FitToContents moves the camera along its current look direction so the
// visible scene fills the view. It returns false when nothing is visible.
func (s *Scene) FitToContents(cam *viewer.Camera, vp viewer.Viewport) bool {
	bbox := s.Bounds()
	if bbox.IsEmpty() {
		return false
	}
	center := bbox.Center()
	radius := math.Max(bbox.Diagonal()/2, 1e-3)

	dir := cam.LookDirection.Normalize()
	if cam.LookDirection.Degenerate() {
		dir = geometry.NewVector3(0, 0, -1)
	}

	distance := radius * 2
	if cam.IsPerspective() {
		// The smaller of the two view angles decides
		half := geometry.DegToRad(cam.FieldOfView) / 2
		if aspect := vp.Aspect(); aspect < 1 {
			half = math.Atan(math.Tan(half) * aspect)
		}
		distance = radius / math.Sin(half)
	} else {
		cam.Width = 2 * radius * math.Max(vp.Aspect(), 1)
	}

	cam.LookDirection = dir.Mul(distance)
	cam.Position = center.Sub(cam.LookDirection)
	return true
}
