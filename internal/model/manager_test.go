package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/findflaw/internal/scene"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeCorner = `solid corner
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 4 0 0
      vertex 0 2 1
    endloop
  endfacet
endsolid corner
`

func writeSTL(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte(cubeCorner), 0644))
	return path
}

func TestManagerLoad(t *testing.T) {
	s := scene.New()
	m := NewManager(s, zerolog.Nop())

	_, err := m.Bounds()
	assert.ErrorIs(t, err, ErrNoModel)
	assert.False(t, m.Loaded())

	path := writeSTL(t)
	require.NoError(t, m.Load(context.Background(), path))

	assert.True(t, m.Loaded())
	assert.Equal(t, path, m.Path())
	assert.Equal(t, []string{path}, m.Dependencies())
	assert.Equal(t, 1, s.Len())
	assert.True(t, m.ContainsNode(s.Handles()[0]))
	assert.False(t, m.ContainsNode(0))

	b, err := m.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 4.0, b.MaxExtent())
}

func TestManagerReloadReplacesNode(t *testing.T) {
	s := scene.New()
	m := NewManager(s, zerolog.Nop())
	path := writeSTL(t)

	require.NoError(t, m.Load(context.Background(), path))
	first := s.Handles()[0]
	require.NoError(t, m.Load(context.Background(), path))

	assert.Equal(t, 1, s.Len())
	assert.False(t, m.ContainsNode(first))
}

func TestManagerLoadErrorKeepsModel(t *testing.T) {
	s := scene.New()
	m := NewManager(s, zerolog.Nop())
	path := writeSTL(t)
	require.NoError(t, m.Load(context.Background(), path))

	err := m.Load(context.Background(), filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
	assert.Equal(t, path, m.Path())
	assert.Equal(t, 1, s.Len())

	err = m.Load(context.Background(), "model.obj")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestManagerSetColor(t *testing.T) {
	s := scene.New()
	m := NewManager(s, zerolog.Nop())
	assert.Equal(t, geometry.Blue, m.Color())

	require.NoError(t, m.Load(context.Background(), writeSTL(t)))
	m.SetColor(Colors[1])

	n, ok := s.Node(s.Handles()[0])
	require.True(t, ok)
	assert.Equal(t, geometry.Gray, n.Color)
}

func TestManagerUnload(t *testing.T) {
	s := scene.New()
	m := NewManager(s, zerolog.Nop())
	require.NoError(t, m.Load(context.Background(), writeSTL(t)))

	m.Unload()
	assert.False(t, m.Loaded())
	assert.Equal(t, 0, s.Len())
}
