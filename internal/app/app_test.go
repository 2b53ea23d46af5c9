package app

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/model"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRaylibCamera(t *testing.T) {
	cam := viewer.NewCamera(geometry.NewBoundingBox())
	c := toRaylibCamera(cam)

	assert.Equal(t, rl.Vector3{X: 0, Y: 0, Z: 10}, c.Position)
	assert.Equal(t, rl.Vector3{}, c.Target)
	assert.Equal(t, float32(45), c.Fovy)
	assert.Equal(t, rl.CameraPerspective, c.Projection)

	cam.Projection = viewer.Orthographic
	cam.Width = 7
	c = toRaylibCamera(cam)
	assert.Equal(t, float32(7), c.Fovy)
	assert.Equal(t, rl.CameraOrthographic, c.Projection)
}

func TestNextEmission(t *testing.T) {
	assert.Equal(t, uint8(model.DefaultEmissionAlpha), nextEmission(0))
	assert.Equal(t, uint8(0), nextEmission(120))
	assert.Equal(t, uint8(0), nextEmission(33))
}

func TestRowText(t *testing.T) {
	m, err := marker.New(3, geometry.NewVector3(0, 0, 0), geometry.NewVector3(3, 4, 0), geometry.Red, "")
	require.NoError(t, err)
	assert.Equal(t, "#3  5.00", rowText(m))

	m.SetLabel("crack")
	assert.Equal(t, "#3 crack  5.00", rowText(m))
}
