package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/viewport"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plate = `solid plate
facet normal 0 0 1
 outer loop
  vertex -2 -2 0
  vertex 2 -2 0
  vertex 2 2 0
 endloop
endfacet
facet normal 0 0 1
 outer loop
  vertex -2 -2 0
  vertex 2 2 0
  vertex -2 2 0
 endloop
endfacet
endsolid plate
`

var testLines = []marker.Record{
	{ID: 4, Label: "seam", StartX: -1, StartZ: 0.5, EndX: 1, EndZ: 0.5, ColorArgb: geometry.Red.ARGB()},
	{ID: 7, StartX: 1.5, StartY: 1.5, EndX: 1.5, EndY: 1.8, ColorArgb: geometry.Red.ARGB()},
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", t.TempDir(), "--log-level", "error"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// fixture writes the plate model and its sidecar line set
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "plate.stl")
	require.NoError(t, os.WriteFile(modelPath, []byte(plate), 0644))
	require.NoError(t, marker.WriteFile(marker.SidecarPath(modelPath), testLines))
	return modelPath
}

func TestLinesCommand(t *testing.T) {
	modelPath := fixture(t)

	out, err := execute(t, "lines", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "   4  seam")
	assert.Contains(t, out, "   7  -")
	assert.Contains(t, out, "2 line(s)")

	out, err = execute(t, "lines", modelPath, "--longest", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "seam")
	assert.NotContains(t, out, "   7  -")

	out, err = execute(t, "lines", modelPath, "--max", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "seam")
	assert.Contains(t, out, "   7  -")
}

func TestLinesCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "lines", filepath.Join(t.TempDir(), "none.stl"))
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	modelPath := fixture(t)

	out, err := execute(t, "info", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: plate")
	assert.Contains(t, out, "Triangles: 2")
	assert.Contains(t, out, "Size: 4.000000 x 4.000000 x 0.000000")
	assert.Contains(t, out, "Lines: 2")
}

func TestPickCommand(t *testing.T) {
	modelPath := fixture(t)

	out, err := execute(t, "pick", modelPath, "--width", "800", "--height", "600", "--x", "400", "--y", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "Line selected.")
	assert.Contains(t, out, "Selected: 4")
	assert.Contains(t, out, "Label: seam")

	// On the plate, away from its diagonal and the lines
	out, err = execute(t, "pick", modelPath, "--width", "800", "--height", "600", "--x", "460", "--y", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "Model: (")
	assert.Contains(t, out, "No line selected.")

	out, err = execute(t, "pick", modelPath, "--width", "800", "--height", "600", "--x", "5", "--y", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Model: -")
	assert.Contains(t, out, "No line selected.")
	assert.Contains(t, out, "Selected: None")
}

func valueAfter(t *testing.T, out, prefix string) float64 {
	t.Helper()
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		if rest, ok := strings.CutPrefix(sc.Text(), prefix); ok {
			var v float64
			_, err := fmt.Sscanf(rest, "%f", &v)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatalf("%q not found in %q", prefix, out)
	return 0
}

func TestFocusCommand(t *testing.T) {
	modelPath := fixture(t)

	out, err := execute(t, "focus", modelPath, "--id", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Line: Marker 4: seam")
	assert.InDelta(t, viewport.FocusDistance(2, 45), valueAfter(t, out, "Distance: "), 1e-6)
	assert.InDelta(t, 45, valueAfter(t, out, "Field of view: "), 1e-9)

	_, err = execute(t, "focus", modelPath, "--id", "99")
	assert.ErrorIs(t, err, marker.ErrNotFound)
}

func TestArchiveCommands(t *testing.T) {
	modelPath := fixture(t)
	dsn := filepath.Join(t.TempDir(), "archive.db")

	out, err := execute(t, "archive", "push", modelPath, "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "revision 1: 2 line(s)")

	// A second revision with one line less
	require.NoError(t, marker.WriteFile(marker.SidecarPath(modelPath), testLines[:1]))
	out, err = execute(t, "archive", "push", modelPath, "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "revision 2: 1 line(s)")

	out, err = execute(t, "archive", "list", "--dsn", dsn)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "plate.stl"))

	restored := filepath.Join(t.TempDir(), "restored.json")
	out, err = execute(t, "archive", "pull", modelPath, "--dsn", dsn, "--revision", "1", "--out", restored)
	require.NoError(t, err)
	assert.Contains(t, out, "revision 1: 2 line(s)")

	records, err := marker.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, testLines, records)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "findflaw dev\n", out)
}
