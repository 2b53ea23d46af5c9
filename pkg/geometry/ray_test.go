package geometry

import (
	"math"
	"testing"
)

func TestRayIntersectTriangle(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(-1, -1, 0),
		NewVector3(1, -1, 0),
		NewVector3(0, 1, 0),
	)

	ray := NewRay(NewVector3(0, 0, 5), NewVector3(0, 0, -1))
	dist, ok := ray.IntersectTriangle(tri)
	if !ok {
		t.Fatalf("IntersectTriangle failed: expected hit")
	}
	if math.Abs(dist-5) > 1e-10 {
		t.Errorf("IntersectTriangle failed: expected distance 5, got %v", dist)
	}

	// Back face is hit too
	back := NewRay(NewVector3(0, 0, -5), NewVector3(0, 0, 1))
	if _, ok := back.IntersectTriangle(tri); !ok {
		t.Errorf("IntersectTriangle failed: expected back face hit")
	}

	miss := NewRay(NewVector3(5, 5, 5), NewVector3(0, 0, -1))
	if _, ok := miss.IntersectTriangle(tri); ok {
		t.Errorf("IntersectTriangle failed: expected miss")
	}

	behind := NewRay(NewVector3(0, 0, 5), NewVector3(0, 0, 1))
	if _, ok := behind.IntersectTriangle(tri); ok {
		t.Errorf("IntersectTriangle failed: triangle behind the ray was hit")
	}
}

func TestRayIntersectBox(t *testing.T) {
	box := BoxAround(NewVector3(0, 0, 0), 2)

	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1))
	dist, ok := ray.IntersectBox(box)
	if !ok || math.Abs(dist-9) > 1e-10 {
		t.Errorf("IntersectBox failed: expected 9, got %v (hit=%v)", dist, ok)
	}

	inside := NewRay(NewVector3(0, 0, 0), NewVector3(1, 0, 0))
	dist, ok = inside.IntersectBox(box)
	if !ok || math.Abs(dist-1) > 1e-10 {
		t.Errorf("IntersectBox failed: expected exit at 1, got %v (hit=%v)", dist, ok)
	}

	miss := NewRay(NewVector3(5, 0, 10), NewVector3(0, 0, -1))
	if _, ok := miss.IntersectBox(box); ok {
		t.Errorf("IntersectBox failed: expected miss")
	}
}

func TestRayIntersectSphere(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1))
	dist, ok := ray.IntersectSphere(NewVector3(0, 0, 0), 2)
	if !ok || math.Abs(dist-8) > 1e-10 {
		t.Errorf("IntersectSphere failed: expected 8, got %v (hit=%v)", dist, ok)
	}

	if _, ok := ray.IntersectSphere(NewVector3(5, 0, 0), 1); ok {
		t.Errorf("IntersectSphere failed: expected miss")
	}
}

func TestRayClosestToSegment(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1))

	// Segment crossing the ray at z=0
	dist, point, gap := ray.ClosestToSegment(NewVector3(-1, 0, 0), NewVector3(1, 0, 0))
	if math.Abs(dist-10) > 1e-10 || gap > 1e-10 {
		t.Errorf("ClosestToSegment failed: got t=%v gap=%v", dist, gap)
	}
	if point.Distance(NewVector3(0, 0, 0)) > 1e-10 {
		t.Errorf("ClosestToSegment failed: expected origin, got %v", point)
	}

	// Segment offset along Y by 0.5
	_, _, gap = ray.ClosestToSegment(NewVector3(-1, 0.5, 0), NewVector3(1, 0.5, 0))
	if math.Abs(gap-0.5) > 1e-10 {
		t.Errorf("ClosestToSegment failed: expected gap 0.5, got %v", gap)
	}

	// Segment ending before the ray: closest point is the endpoint
	_, point, gap = ray.ClosestToSegment(NewVector3(2, 0, 0), NewVector3(3, 0, 0))
	if point != NewVector3(2, 0, 0) || math.Abs(gap-2) > 1e-10 {
		t.Errorf("ClosestToSegment failed: expected endpoint at gap 2, got %v gap %v", point, gap)
	}
}
