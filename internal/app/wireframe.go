package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
)

var wireframeColor = rl.NewColor(100, 100, 100, 200) // Semi-transparent dark gray

type edgeKey struct {
	a, b geometry.Vector3
}

// drawWireframe renders the edges of a mesh node, each shared edge once
func (app *App) drawWireframe(n *scene.Node) {
	drawn := make(map[edgeKey]bool, len(n.Triangles)*3)

	for _, tri := range n.Triangles {
		edges := [3][2]geometry.Vector3{{tri.V1, tri.V2}, {tri.V2, tri.V3}, {tri.V3, tri.V1}}
		for _, e := range edges {
			key := edgeKey{e[0], e[1]}
			if drawn[key] || drawn[edgeKey{e[1], e[0]}] {
				continue
			}
			drawn[key] = true
			rl.DrawLine3D(toRaylib(e[0]), toRaylib(e[1]), wireframeColor)
		}
	}
}
