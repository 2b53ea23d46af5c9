package stl

import (
	"math"
	"testing"

	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestModel_AddSkipsNonFinite(t *testing.T) {
	m := NewModel("part", 2)
	n := geometry.NewVector3(0, 0, 1)

	ok := m.Add(geometry.NewTriangle(n,
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)))
	assert.True(t, ok)

	ok = m.Add(geometry.NewTriangle(n,
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(math.NaN(), 0, 0), geometry.NewVector3(0, 1, 0)))
	assert.False(t, ok)

	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, 1, m.Skipped)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), m.BoundingBox().Max)
}

func TestModel_Empty(t *testing.T) {
	m := NewModel("empty", -1)
	assert.True(t, m.Empty())
	assert.True(t, m.BoundingBox().IsEmpty())
}
