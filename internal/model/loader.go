package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/findflaw/pkg/openscad"
	"github.com/philipparndt/findflaw/pkg/stl"
)

// Read loads a model from either an STL or an OpenSCAD file. Alongside the
// model it returns the files whose change should trigger a reload.
func Read(ctx context.Context, filePath string) (*stl.Model, []string, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".stl":
		m, err := stl.Parse(filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return m, []string{filePath}, nil

	case ".scad":
		return readSCAD(ctx, filePath)

	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}

func readSCAD(ctx context.Context, filePath string) (*stl.Model, []string, error) {
	renderer := openscad.NewRenderer(filepath.Dir(filePath))

	deps, err := renderer.ResolveDependencies(filepath.Base(filePath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "findflaw-*.stl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(ctx, filepath.Base(filePath), tmp.Name()); err != nil {
		return nil, nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	m, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return m, deps, nil
}
