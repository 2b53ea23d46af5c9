package geometry

import "math"

const rayEpsilon = 1e-12

// Ray is a half-line starting at Origin. Direction is kept unit length.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// PointAt returns the point at parameter t along the ray
func (r Ray) PointAt(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle returns the ray parameter of the hit with a triangle.
// Both faces are hit (Möller–Trumbore without back-face culling).
func (r Ray) IntersectTriangle(tri Triangle) (float64, bool) {
	edge1 := tri.V2.Sub(tri.V1)
	edge2 := tri.V3.Sub(tri.V1)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(tri.V1)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectBox returns the ray parameter where the ray enters an
// axis-aligned box. A ray starting inside reports the exit point.
func (r Ray) IntersectBox(b BoundingBox) (float64, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < rayEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// IntersectSphere returns the nearest non-negative ray parameter on a sphere
func (r Ray) IntersectSphere(center Vector3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSquared() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// ClosestToSegment finds the closest approach between the ray and the
// segment a-b. It returns the ray parameter, the closest point on the
// segment and the distance between the two closest points.
func (r Ray) ClosestToSegment(a, b Vector3) (t float64, onSegment Vector3, dist float64) {
	d := b.Sub(a)
	w := r.Origin.Sub(a)

	dd := d.Dot(d)
	rd := r.Direction.Dot(d)
	rw := r.Direction.Dot(w)
	dw := d.Dot(w)

	var s float64
	if dd < rayEpsilon {
		// Segment collapsed to a point
		s = 0
		t = math.Max(0, -rw)
	} else {
		denom := dd - rd*rd // |dir|==1
		if denom > rayEpsilon {
			s = clamp01((dw - rd*rw) / denom)
		}
		t = rd*s - rw
		if t < 0 {
			t = 0
			s = clamp01(dw / dd)
		}
	}

	onSegment = a.Add(d.Mul(s))
	dist = r.PointAt(t).Distance(onSegment)
	return t, onSegment, dist
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
