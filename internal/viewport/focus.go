package viewport

import (
	"math"

	"github.com/philipparndt/findflaw/internal/anim"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/pkg/geometry"
)

// minLineLength keeps the focus distance finite for collapsed lines
const minLineLength = 1e-6

// FocusDistance returns how far the camera should sit from a line of
// length l so it fills half the vertical field of view fovDeg
func FocusDistance(l, fovDeg float64) float64 {
	l = math.Max(l, minLineLength)
	angle := geometry.DegToRad(fovDeg) * focusFraction

	d := geometry.DistanceForHeight(l, angle)
	d = math.Max(0.8*l, math.Min(d, 10*l))
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 1 {
		d = math.Max(2*l, 10)
	}
	return d
}

// FocusOnMarkerAnimated moves the camera toward the marker's midpoint,
// keeping the viewing direction. A later focus supersedes a running one.
// Orthographic cameras are left alone.
func (in *Interaction) FocusOnMarkerAnimated(m *marker.LineMarker) bool {
	cam := in.camera
	if m == nil || !cam.IsPerspective() {
		return false
	}

	target := m.Midpoint()
	distance := FocusDistance(m.Start.Distance(m.End), cam.FieldOfView)

	dir := geometry.NewVector3(0, 0, -1)
	if !cam.LookDirection.Degenerate() {
		dir = cam.LookDirection.Normalize()
	}
	endLook := dir.Mul(distance)
	endPos := target.Sub(endLook)

	startPos, startLook := cam.Position, cam.LookDirection
	tween := &anim.Tween{
		Duration:     in.opts.FocusDuration,
		Acceleration: in.opts.Acceleration,
		Deceleration: in.opts.Deceleration,
		Step: func(p float64) {
			cam.Position = startPos.Lerp(endPos, p)
			cam.LookDirection = startLook.Lerp(endLook, p)
		},
		Done: func() {
			cam.Position = endPos
			cam.LookDirection = endLook
		},
	}
	in.animator.Start(cameraSlot, tween)

	in.log.Debug().
		Int("marker", m.ID).
		Float64("distance", distance).
		Msg("focusing")
	return true
}

// Animating reports whether a focus transition is running
func (in *Interaction) Animating() bool {
	return in.animator.Active(cameraSlot)
}
