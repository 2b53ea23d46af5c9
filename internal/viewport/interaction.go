package viewport

import (
	"math"
	"time"

	"github.com/philipparndt/findflaw/internal/anim"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
	"github.com/rs/zerolog"
)

const (
	panSensitivity = 0.1
	stepFraction   = 0.05 // Share of the visible height moved per key press
	focusFraction  = 0.5  // Share of the vertical view a focused line fills
	viewDistance   = 2.2  // Initial view distance in model radii

	cameraSlot = "camera"
)

// ModelSource is the part of the model manager picking and framing need
type ModelSource interface {
	Loaded() bool
	ContainsNode(h scene.Handle) bool
	Bounds() (geometry.BoundingBox, error)
}

// MarkerIndex resolves scene nodes to markers
type MarkerIndex interface {
	FindByVisual(h scene.Handle) (*marker.LineMarker, bool)
}

// Options tune the focus animation
type Options struct {
	FocusDuration time.Duration
	Acceleration  float64
	Deceleration  float64
}

// DefaultOptions returns the stock focus animation settings
func DefaultOptions() Options {
	return Options{
		FocusDuration: 400 * time.Millisecond,
		Acceleration:  0.3,
		Deceleration:  0.3,
	}
}

// Interaction turns user intent into camera changes and scene picks
type Interaction struct {
	camera   *viewer.Camera
	viewport viewer.Viewport
	scene    *scene.Scene
	model    ModelSource
	markers  MarkerIndex
	animator *anim.Animator
	opts     Options
	log      zerolog.Logger
}

// New creates an interaction over cam. Focus animations run on animator.
func New(cam *viewer.Camera, vp viewer.Viewport, s *scene.Scene, model ModelSource, markers MarkerIndex, animator *anim.Animator, opts Options, log zerolog.Logger) *Interaction {
	return &Interaction{
		camera:   cam,
		viewport: vp,
		scene:    s,
		model:    model,
		markers:  markers,
		animator: animator,
		opts:     opts,
		log:      log.With().Str("component", "viewport").Logger(),
	}
}

// Camera returns the camera being driven
func (in *Interaction) Camera() *viewer.Camera {
	return in.camera
}

// Viewport returns the current drawing surface size
func (in *Interaction) Viewport() viewer.Viewport {
	return in.viewport
}

// Resize updates the drawing surface size
func (in *Interaction) Resize(vp viewer.Viewport) {
	in.viewport = vp
}

// Pan shifts position and target together in screen directions. dx moves
// the view content right, dy up. Degenerate orientations are ignored.
func (in *Interaction) Pan(dx, dy float64) {
	cam := in.camera
	if cam.LookDirection.Degenerate() {
		return
	}
	look := cam.LookDirection.Normalize()
	up := cam.UpDirection.Normalize()

	right := look.Cross(up)
	if right.Degenerate() {
		return
	}
	right = right.Normalize()

	scale := cam.LookDirection.Length() * panSensitivity
	delta := right.Mul(-dx).Add(up.Mul(dy)).Mul(scale)
	cam.Position = cam.Position.Add(delta)
}

// ChangeFov widens (positive) or narrows the field of view, within
// [MinFieldOfView, MaxFieldOfView]. Orthographic cameras are unchanged.
func (in *Interaction) ChangeFov(delta float64) {
	cam := in.camera
	if !cam.IsPerspective() {
		return
	}
	cam.FieldOfView = math.Max(viewer.MinFieldOfView, math.Min(viewer.MaxFieldOfView, cam.FieldOfView+delta))
}

// DynamicStep is the world distance one key press moves: 5% of the view
// height at half the current view distance
func (in *Interaction) DynamicStep() float64 {
	cam := in.camera
	distance := math.Max(cam.LookDirection.Length()/2, 1)
	if cam.IsPerspective() {
		return geometry.FrustumHeight(distance, cam.FieldOfView) * stepFraction
	}
	return distance * stepFraction
}

func (in *Interaction) stepOffset(dx, dy, dz int) geometry.Vector3 {
	step := in.DynamicStep()
	return geometry.NewVector3(float64(dx)*step, float64(dy)*step, float64(dz)*step)
}

// MovePosition moves the camera along world axes, keeping the target
func (in *Interaction) MovePosition(dx, dy, dz int) {
	in.camera.SetPosition(in.camera.Position.Add(in.stepOffset(dx, dy, dz)))
}

// MoveTarget moves the target along world axes, keeping the position
func (in *Interaction) MoveTarget(dx, dy, dz int) {
	in.camera.SetTarget(in.camera.Target().Add(in.stepOffset(dx, dy, dz)))
}

// ZoomExtents frames everything visible in the scene
func (in *Interaction) ZoomExtents() bool {
	in.animator.Cancel(cameraSlot)
	return in.scene.FitToContents(in.camera, in.viewport)
}

// SetInitialView looks at the model from above (top) or below along Z.
// Without a model nothing happens.
func (in *Interaction) SetInitialView(top bool) bool {
	if !in.model.Loaded() {
		return false
	}
	bounds, err := in.model.Bounds()
	if err != nil || bounds.IsEmpty() {
		return false
	}

	center := bounds.Center()
	radius := math.Max(bounds.MaxExtent(), 1)
	distance := radius * viewDistance
	if !top {
		distance = -distance
	}

	in.animator.Cancel(cameraSlot)
	in.camera.Position = center.Add(geometry.NewVector3(0, 0, distance))
	in.camera.LookDirection = geometry.NewVector3(0, 0, -distance)
	in.camera.UpDirection = geometry.NewVector3(0, 1, 0)
	return true
}
