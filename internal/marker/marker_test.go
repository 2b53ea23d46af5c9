package marker

import (
	"math"
	"testing"

	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarker(t *testing.T) {
	start := geometry.NewVector3(0, 0, 0)
	end := geometry.NewVector3(2, 4, 6)

	m, err := New(3, start, end, geometry.Red, "")
	require.NoError(t, err)

	assert.Equal(t, "3", m.DisplayText())
	assert.Equal(t, geometry.NewVector3(1, 2, 3), m.Midpoint())
	assert.Equal(t, DefaultSphereRadius, m.BaseSphereRadius)
	assert.False(t, m.Finalized())
	assert.Len(t, m.Nodes(), 3, "segment, start cube and label")

	seg := m.segment.node
	assert.Equal(t, LineThickness, seg.Thickness)
	assert.Equal(t, geometry.Red, seg.Color)
	assert.Equal(t, CubeSize, m.startCube.node.Size)
	assert.Equal(t, geometry.NewVector3(2, 4.7, 6), m.text.node.Center)
	assert.Equal(t, 0.0, m.SphereRadius())
}

func TestNewMarkerValidation(t *testing.T) {
	_, err := New(0, geometry.Vector3{}, geometry.Vector3{}, geometry.Red, "")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New(1, geometry.NewVector3(math.NaN(), 0, 0), geometry.Vector3{}, geometry.Red, "")
	assert.ErrorIs(t, err, ErrNonFinitePoint)

	_, err = New(1, geometry.Vector3{}, geometry.NewVector3(0, math.Inf(1), 0), geometry.Red, "")
	assert.ErrorIs(t, err, ErrNonFinitePoint)
}

func TestDisplayText(t *testing.T) {
	m, err := New(4, geometry.Vector3{}, geometry.NewVector3(1, 0, 0), geometry.Red, "crack")
	require.NoError(t, err)
	assert.Equal(t, "Marker 4: crack", m.DisplayText())
	assert.Equal(t, "Marker 4: crack", m.text.node.Text)

	m.SetLabel("   ")
	assert.Equal(t, "4", m.DisplayText())
	assert.Equal(t, "4", m.text.node.Text)
}

func TestFinalizeEnd(t *testing.T) {
	m, err := New(1, geometry.Vector3{}, geometry.Vector3{}, geometry.Red, "")
	require.NoError(t, err)

	end := geometry.NewVector3(4, 0, 0)
	require.NoError(t, m.FinalizeEnd(end, false))
	assert.False(t, m.Finalized())
	assert.Len(t, m.Nodes(), 3)

	require.NoError(t, m.FinalizeEnd(end, true))
	assert.True(t, m.Finalized())
	assert.Len(t, m.Nodes(), 5)

	assert.Equal(t, end, m.segment.node.End)
	assert.Equal(t, DeselectedThickness, m.segment.node.Thickness)
	assert.False(t, m.endCube.node.Visible)
	assert.False(t, m.startCube.node.Visible)

	sphere := m.sphere.node
	assert.False(t, sphere.Visible)
	assert.Equal(t, DefaultSphereRadius, sphere.Radius)
	assert.Equal(t, geometry.NewVector3(2, 0, 0), sphere.Center)
	assert.Equal(t, uint8(SphereAlpha), sphere.Color.A)
	assert.Equal(t, geometry.NewVector3(4, LabelOffset, 0), m.text.node.Center)

	assert.ErrorIs(t, m.FinalizeEnd(geometry.NewVector3(math.NaN(), 0, 0), true), ErrNonFinitePoint)
}

func TestSelectDeselect(t *testing.T) {
	color := geometry.NewColor(10, 20, 30, 255)
	m, err := New(1, geometry.Vector3{}, geometry.NewVector3(1, 1, 1), color, "")
	require.NoError(t, err)
	require.NoError(t, m.FinalizeEnd(m.End, true))

	m.Select()
	assert.True(t, m.Selected())
	assert.Equal(t, geometry.Yellow, m.segment.node.Color)
	assert.Equal(t, SelectedThickness, m.segment.node.Thickness)
	assert.True(t, m.startCube.node.Visible)
	assert.True(t, m.endCube.node.Visible)
	assert.Equal(t, geometry.Yellow, m.endCube.node.Color)

	m.Deselect()
	assert.False(t, m.Selected())
	assert.Equal(t, color, m.segment.node.Color)
	assert.Equal(t, DeselectedThickness, m.segment.node.Thickness)
	assert.False(t, m.startCube.node.Visible)
	assert.False(t, m.endCube.node.Visible)
	assert.Equal(t, color, m.startCube.node.Color)
}

func TestRecordRoundTrip(t *testing.T) {
	color := geometry.NewColor(0x12, 0x34, 0x56, 0xFF)
	m, err := New(9, geometry.NewVector3(0.1, -2, 3e5), geometry.NewVector3(1.0/3, 0, -7), color, "burr")
	require.NoError(t, err)

	r := m.Record()
	assert.Equal(t, int32(-15584170), r.ColorArgb) // 0xFF123456

	back, err := FromRecord(r)
	require.NoError(t, err)
	assert.True(t, back.Finalized())
	assert.Equal(t, r, back.Record())
	assert.Equal(t, color, back.Color)
}

func TestFromRecordRejectsInvalid(t *testing.T) {
	_, err := FromRecord(Record{ID: -1})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = FromRecord(Record{ID: 1, EndZ: math.Inf(-1)})
	assert.ErrorIs(t, err, ErrNonFinitePoint)
}
