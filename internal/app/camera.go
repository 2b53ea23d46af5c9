package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
)

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toRaylibColor(c geometry.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// toRaylibCamera converts the interaction camera for drawing. Raylib
// uses Fovy as the visible width for orthographic cameras.
func toRaylibCamera(cam *viewer.Camera) rl.Camera3D {
	c := rl.Camera3D{
		Position:   toRaylib(cam.Position),
		Target:     toRaylib(cam.Target()),
		Up:         toRaylib(cam.UpDirection),
		Fovy:       float32(cam.FieldOfView),
		Projection: rl.CameraPerspective,
	}
	if !cam.IsPerspective() {
		c.Fovy = float32(cam.Width)
		c.Projection = rl.CameraOrthographic
	}
	return c
}

// windowViewport returns the current window size
func windowViewport() viewer.Viewport {
	return viewer.Viewport{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

func screenPoint(p rl.Vector2) viewer.ScreenPoint {
	return viewer.ScreenPoint{X: float64(p.X), Y: float64(p.Y)}
}

// toggleTopBottom flips the initial view between looking from +Z and -Z
func (app *App) toggleTopBottom() {
	app.View.topView = !app.View.topView
	app.session.SetInitialView(app.View.topView)
}
