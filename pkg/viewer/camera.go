package viewer

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Field of view limits in degrees
const (
	MinFieldOfView = 5.0
	MaxFieldOfView = 120.0
)

// Projection selects how the camera maps the scene to the screen
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// ErrEmptyViewport is returned when projecting into a zero-sized viewport
var ErrEmptyViewport = errors.New("viewport has no area")

// ScreenPoint is a position in viewport pixels, origin top-left
type ScreenPoint struct {
	X, Y float64
}

// Viewport is the size of the drawing surface in pixels
type Viewport struct {
	Width, Height float64
}

// Aspect returns width / height
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// Camera represents a 3D camera for viewing the model.
//
// LookDirection is not normalized: its length is the distance from
// Position to the point being looked at, so Target() == Position +
// LookDirection always holds.
type Camera struct {
	Position      geometry.Vector3
	LookDirection geometry.Vector3
	UpDirection   geometry.Vector3
	FieldOfView   float64 // Vertical field of view in degrees
	Projection    Projection
	Width         float64 // Visible width for orthographic cameras
	NearPlane     float64
	FarPlane      float64
}

// NewCamera creates a new camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := geometry.Vector3{}
	distance := 10.0
	if !bbox.IsEmpty() {
		center = bbox.Center()
		distance = math.Max(bbox.MaxExtent()*2.0, 1.0)
	}

	return &Camera{
		Position:      center.Add(geometry.NewVector3(0, 0, distance)),
		LookDirection: geometry.NewVector3(0, 0, -distance),
		UpDirection:   geometry.NewVector3(0, 1, 0),
		FieldOfView:   45,
		Projection:    Perspective,
		Width:         distance,
		NearPlane:     0.01,
		FarPlane:      100000,
	}
}

// Target returns the point the camera looks at
func (c *Camera) Target() geometry.Vector3 {
	return c.Position.Add(c.LookDirection)
}

// Distance returns the distance from the camera to its target
func (c *Camera) Distance() float64 {
	return c.LookDirection.Length()
}

// SetTarget moves the target, keeping the position
func (c *Camera) SetTarget(target geometry.Vector3) {
	c.LookDirection = target.Sub(c.Position)
}

// SetPosition moves the camera, keeping the target
func (c *Camera) SetPosition(position geometry.Vector3) {
	target := c.Target()
	c.Position = position
	c.LookDirection = target.Sub(position)
}

// IsPerspective reports whether the camera uses a perspective projection
func (c *Camera) IsPerspective() bool {
	return c.Projection == Perspective
}

func toVec3(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// up returns an up vector usable with the current look direction
func (c *Camera) up() geometry.Vector3 {
	up := c.UpDirection
	if up.Degenerate() || c.LookDirection.Cross(up).Degenerate() {
		// Looking straight along the up axis: pick any perpendicular
		up = geometry.NewVector3(0, 0, 1)
		if c.LookDirection.Cross(up).Degenerate() {
			up = geometry.NewVector3(0, 1, 0)
		}
	}
	return up
}

// ViewMatrix returns the world-to-camera transformation
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	look := c.LookDirection
	if look.Degenerate() {
		look = geometry.NewVector3(0, 0, -1)
	}
	return mgl64.LookAtV(toVec3(c.Position), toVec3(c.Position.Add(look)), toVec3(c.up()))
}

// ProjectionMatrix returns the camera-to-clip transformation for a viewport
func (c *Camera) ProjectionMatrix(vp Viewport) mgl64.Mat4 {
	aspect := vp.Aspect()
	if c.Projection == Orthographic {
		halfW := c.Width / 2
		halfH := halfW / aspect
		return mgl64.Ortho(-halfW, halfW, -halfH, halfH, c.NearPlane, c.FarPlane)
	}
	return mgl64.Perspective(geometry.DegToRad(c.FieldOfView), aspect, c.NearPlane, c.FarPlane)
}

// Project projects a 3D point to screen coordinates. The returned depth is
// the distance along the view axis.
func (c *Camera) Project(point geometry.Vector3, vp Viewport) (ScreenPoint, float64) {
	view := c.ViewMatrix()
	win := mgl64.Project(toVec3(point), view, c.ProjectionMatrix(vp), 0, 0, int(vp.Width), int(vp.Height))
	depth := -view.Mul4x1(toVec3(point).Vec4(1))[2]
	return ScreenPoint{X: win[0], Y: vp.Height - win[1]}, depth
}

// Unproject converts a screen position to a world-space ray through it
func (c *Camera) Unproject(p ScreenPoint, vp Viewport) (geometry.Ray, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return geometry.Ray{}, ErrEmptyViewport
	}
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(vp)
	w, h := int(vp.Width), int(vp.Height)

	// OpenGL window coordinates start bottom-left
	y := vp.Height - p.Y
	near, err := mgl64.UnProject(mgl64.Vec3{p.X, y, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return geometry.Ray{}, err
	}
	far, err := mgl64.UnProject(mgl64.Vec3{p.X, y, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return geometry.Ray{}, err
	}

	origin := fromVec3(near)
	return geometry.NewRay(origin, fromVec3(far).Sub(origin)), nil
}

// WorldPerPixel returns how many world units one screen pixel covers at
// the given distance along the view axis.
func (c *Camera) WorldPerPixel(depth float64, vp Viewport) float64 {
	if vp.Height <= 0 {
		return 0
	}
	if c.Projection == Orthographic {
		return (c.Width / vp.Aspect()) / vp.Height
	}
	return geometry.FrustumHeight(depth, c.FieldOfView) / vp.Height
}
