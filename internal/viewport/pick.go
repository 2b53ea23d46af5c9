package viewport

import (
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
)

// ModelHit is a point on the model surface
type ModelHit struct {
	Point  geometry.Vector3
	Handle scene.Handle
}

// LineHit is the first non-model node under the pointer. Marker is nil
// when the node belongs to no marker.
type LineHit struct {
	Point  geometry.Vector3
	Handle scene.Handle
	Marker *marker.LineMarker
}

func (in *Interaction) hits(pos viewer.ScreenPoint) []scene.Hit {
	ray, err := in.camera.Unproject(pos, in.viewport)
	if err != nil {
		in.log.Debug().Err(err).Msg("cannot build pick ray")
		return nil
	}
	return in.scene.Intersections(ray, in.camera, in.viewport)
}

// PickModel returns the nearest model surface point under the pointer
func (in *Interaction) PickModel(pos viewer.ScreenPoint) (ModelHit, bool) {
	hits := in.hits(pos)
	if len(hits) == 0 {
		return ModelHit{}, false
	}
	for _, h := range hits {
		if in.model.ContainsNode(h.Handle) {
			return ModelHit{Point: h.Point, Handle: h.Handle}, true
		}
	}
	return ModelHit{}, false
}

// PickLine returns the nearest hit that is not part of the model, so
// annotations lying on the surface win over the surface itself
func (in *Interaction) PickLine(pos viewer.ScreenPoint) (LineHit, bool) {
	hits := in.hits(pos)
	if len(hits) == 0 {
		return LineHit{}, false
	}
	for _, h := range hits {
		if in.model.ContainsNode(h.Handle) {
			continue
		}
		m, _ := in.markers.FindByVisual(h.Handle)
		return LineHit{Point: h.Point, Handle: h.Handle, Marker: m}, true
	}
	return LineHit{}, false
}
