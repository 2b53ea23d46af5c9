package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/stl"
	"github.com/philipparndt/findflaw/pkg/viewer"
)

const cylinderSides = 8

// Light direction for baked lighting
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// shade applies diffuse lighting plus a self-lit term of the same colour
func shade(c rl.Color, normal geometry.Vector3, emission uint8) (uint8, uint8, uint8) {
	intensity := math.Max(0.3, -normal.Dot(lightDir)) // Min 30% ambient
	intensity += float64(emission) / 255
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*intensity))
	}
	return scale(c.R), scale(c.G), scale(c.B)
}

// stlToRaylibMesh converts an STL model to a Raylib mesh with baked lighting
func stlToRaylibMesh(model *stl.Model, color rl.Color, emission uint8) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	colors := make([]uint8, 0, vertexCount*4)

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()
		r, g, b := shade(color, normal, emission)

		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			colors = append(colors, r, g, b, color.A)
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// syncMesh rebuilds the model mesh when the model or its look changed
func (app *App) syncMesh() {
	models := app.session.Models()
	md := models.Model()
	color := toRaylibColor(models.Color())
	emission := models.EmissionAlpha()

	c := &app.Mesh
	if c.loaded && c.model == md && c.color == color && c.emission == emission {
		return
	}
	if md != c.model && md != nil {
		app.info = analysis.AnalyzeModel(md)
	}
	app.unloadMesh()
	if md == nil || md.Empty() {
		return
	}

	c.mesh = stlToRaylibMesh(md, color, emission)
	c.model = md
	c.color = color
	c.emission = emission
	c.loaded = true
}

func (app *App) unloadMesh() {
	if app.Mesh.loaded {
		rl.UnloadMesh(&app.Mesh.mesh)
	}
	app.Mesh.loaded = false
	app.Mesh.model = nil
}

// drawScene draws every visible node. Labels are drawn afterwards in
// screen space so they always face the viewer.
func (app *App) drawScene() {
	cam := app.session.Camera()
	vp := app.session.View().Viewport()
	models := app.session.Models()

	rl.BeginMode3D(toRaylibCamera(cam))
	app.session.Scene().Each(func(h scene.Handle, n *scene.Node) {
		if !n.Visible {
			return
		}
		switch n.Kind {
		case scene.KindMesh:
			if !models.ContainsNode(h) {
				return
			}
			if app.View.showFilled && app.Mesh.loaded {
				rl.DrawMesh(app.Mesh.mesh, app.Mesh.material, rl.MatrixIdentity())
			}
			if app.View.showWireframe {
				app.drawWireframe(n)
			}
		case scene.KindSegment:
			radius := segmentRadius(cam, vp, n)
			rl.DrawCylinderEx(toRaylib(n.Start), toRaylib(n.End), radius, radius, cylinderSides, toRaylibColor(n.Color))
		case scene.KindCube:
			s := float32(n.Size)
			rl.DrawCube(toRaylib(n.Center), s, s, s, toRaylibColor(n.Color))
		case scene.KindSphere:
			rl.DrawSphere(toRaylib(n.Center), float32(n.Radius), toRaylibColor(n.Color))
		}
	})
	rl.EndMode3D()

	app.drawBillboards(cam, vp)
}

// segmentRadius keeps a segment at its pixel thickness at any distance
func segmentRadius(cam *viewer.Camera, vp viewer.Viewport, n *scene.Node) float32 {
	mid := n.Start.Midpoint(n.End)
	depth := mid.Sub(cam.Position).Dot(cam.LookDirection.Normalize())
	return float32(cam.WorldPerPixel(math.Abs(depth), vp) * math.Max(n.Thickness, 1) / 2)
}

func (app *App) drawBillboards(cam *viewer.Camera, vp viewer.Viewport) {
	const fontSize = 16
	app.session.Scene().Each(func(_ scene.Handle, n *scene.Node) {
		if !n.Visible || n.Kind != scene.KindBillboard {
			return
		}
		p, depth := cam.Project(n.Center, vp)
		if depth <= 0 {
			return
		}
		size := rl.MeasureTextEx(app.UI.font, n.Text, fontSize, 1)
		pos := rl.Vector2{X: float32(p.X) - size.X/2, Y: float32(p.Y) - size.Y/2}
		rl.DrawTextEx(app.UI.font, n.Text, pos, fontSize, 1, toRaylibColor(n.Color))
	})
}
